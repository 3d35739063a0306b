package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/qsopipe/qsopipe/pkg/awards"
	"github.com/qsopipe/qsopipe/pkg/logger"
	"github.com/qsopipe/qsopipe/pkg/storage"
)

func newAwardsCmd(opts *rootOptions) *cobra.Command {
	var (
		band     string
		mode     string
		asJSON   bool
		suggest  bool
		parallel bool
	)

	cmd := &cobra.Command{
		Use:   "awards",
		Short: "Summarize award progress over the logbook",
		Long: `Awards aggregates the logbook into unique countries, grid squares,
callsigns, bands, and modes, plus grids worked per band. With
--suggest it also reports which award thresholds are met or close.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			log := logger.Get()

			store, err := storage.Open(cfg.Storage.Path, log)
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			qsos, err := store.Search(ctx, storage.Filter{})
			if err != nil {
				return err
			}
			qsos = awards.Filter(qsos, band, mode)

			var summary *awards.Summary
			if parallel || cfg.Awards.Parallel {
				summary, err = awards.ComputeParallel(ctx, qsos, awards.AggregatorConfig{
					ChunkSize: cfg.Awards.ChunkSize,
					Workers:   cfg.Awards.Workers,
				})
				if err != nil {
					return err
				}
			} else {
				summary = awards.Compute(qsos)
			}
			rep := summary.Report()

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			fmt.Printf("QSOs:      %d\n", rep.TotalQSOs)
			fmt.Printf("Countries: %d\n", rep.UniqueCountries)
			fmt.Printf("Grids:     %d\n", rep.UniqueGrids)
			fmt.Printf("Calls:     %d\n", rep.UniqueCalls)
			fmt.Printf("Bands:     %d\n", rep.UniqueBands)
			fmt.Printf("Modes:     %d\n", rep.UniqueModes)

			if len(rep.GridsPerBand) > 0 {
				bands := make([]string, 0, len(rep.GridsPerBand))
				for b := range rep.GridsPerBand {
					bands = append(bands, b)
				}
				sort.Strings(bands)
				fmt.Println("Grids per band:")
				for _, b := range bands {
					fmt.Printf("  %-8s %d\n", b, rep.GridsPerBand[b])
				}
			}

			if suggest {
				fmt.Println("Suggestions:")
				for _, s := range awards.Suggest(rep, awards.LoadThresholds()) {
					fmt.Printf("  %s\n", s)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&band, "band", "", "only count QSOs on this band")
	cmd.Flags().StringVar(&mode, "mode", "", "only count QSOs in this mode")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "include award suggestions")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "force chunked-parallel aggregation")
	return cmd
}
