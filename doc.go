// Package qsopipe is an amateur-radio logging toolkit built around the
// ADIF (Amateur Data Interchange Format) interchange format.
//
// It parses ADIF documents into QSO records, imports large logs through
// a chunked parallel pipeline, stores them in a local SQLite logbook,
// streams them back out as ADIF, and aggregates award statistics
// (DXCC-style country counts, VUCC-style grid counts, grids per band).
//
// # Key Packages
//
//	pkg/adif          - ADIF tag scanner, record splitter, normalizer, and streaming encoder
//	pkg/adifio        - transparent plain/gzip/zstd ADIF file IO
//	internal/pipeline - parallel import pipeline with serial fallback
//	pkg/awards        - award aggregation, union-based merge, suggestions
//	pkg/storage       - SQLite-backed logbook store
//	pkg/config        - YAML configuration with ${VAR} substitution
//	pkg/logger        - structured logging built on zap
//	pkg/pool          - object pooling for field maps and encode buffers
//	pkg/qsoerrors     - typed structured errors
//
// # Quick Start
//
// Import a log and compute awards:
//
//	doc, _ := adifio.ReadAll("contest.adi.gz")
//	importer, _ := pipeline.NewImporter(pipeline.Config{Parallel: true}, logger.Get())
//	res, _ := importer.Import(ctx, doc)
//	report := awards.Compute(res.QSOs).Report()
//
// The qsopipe command in cmd/qsopipe wires the same pieces into a CLI
// with import, export, awards, and log subcommands.
//
// # Format Notes
//
// ADIF field values are byte-length prefixed, so values may contain any
// byte, including tag delimiters. The scanner honors the declared
// length rather than searching for a closing delimiter, and the encoder
// always writes byte-accurate lengths. Records that lack a callsign or
// a valid date and time are counted as rejected during import, never
// surfaced as errors.
package qsopipe
