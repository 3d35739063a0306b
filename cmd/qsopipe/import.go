package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qsopipe/qsopipe/internal/pipeline"
	"github.com/qsopipe/qsopipe/pkg/adifio"
	"github.com/qsopipe/qsopipe/pkg/logger"
	"github.com/qsopipe/qsopipe/pkg/storage"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		workers int
		serial  bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import an ADIF log file into the logbook",
		Long: `Import parses FILE (.adi, .adi.gz, or .adi.zst) into QSO records and
inserts them into the logbook. Records missing a callsign or a valid
date/time are skipped and reported in the totals, never as errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Pipeline.Workers = workers
			}
			if serial {
				cfg.Pipeline.Parallel = false
			}

			ctx := context.WithValue(cmd.Context(), logger.ImportIDKey, uuid.NewString())
			ctx = context.WithValue(ctx, logger.SourceFileKey, args[0])
			log := logger.WithContext(ctx)

			doc, err := adifio.ReadAll(args[0])
			if err != nil {
				return err
			}

			importer, err := pipeline.NewImporter(pipeline.Config{
				Workers:         cfg.Pipeline.Workers,
				SerialThreshold: cfg.Pipeline.SerialThreshold,
				Parallel:        cfg.Pipeline.Parallel,
			}, log)
			if err != nil {
				return err
			}

			res, err := importer.Import(ctx, doc)
			if err != nil {
				return err
			}

			inserted := 0
			if !dryRun && len(res.QSOs) > 0 {
				store, err := storage.Open(cfg.Storage.Path, log)
				if err != nil {
					return err
				}
				defer store.Close() //nolint:errcheck

				inserted, err = store.InsertBatch(ctx, res.QSOs)
				if err != nil {
					return err
				}
			}

			log.Info("import finished",
				zap.String("file", args[0]),
				zap.Int("accepted", res.Accepted),
				zap.Int("rejected", res.Rejected),
				zap.Int("inserted", inserted))

			fmt.Printf("Imported %d QSOs (%d skipped)\n", res.Accepted, res.Rejected)
			if dryRun {
				fmt.Println("Dry run: nothing written to the logbook")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "parallel worker count (0 = CPU count)")
	cmd.Flags().BoolVar(&serial, "serial", false, "force the serial import path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without writing to the logbook")
	return cmd
}
