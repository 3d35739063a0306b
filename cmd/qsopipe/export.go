package main

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qsopipe/qsopipe/pkg/adif"
	"github.com/qsopipe/qsopipe/pkg/adifio"
	"github.com/qsopipe/qsopipe/pkg/logger"
	"github.com/qsopipe/qsopipe/pkg/models"
	"github.com/qsopipe/qsopipe/pkg/storage"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		band   string
		mode   string
		call   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the logbook as an ADIF document",
		Long: `Export writes the logbook to stdout or to --output as ADIF. A .gz or
.zst output extension selects compressed output.`,
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

			qsos, err := store.Search(ctx, storage.Filter{Call: call, Band: band, Mode: mode})
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if output != "" {
				wc, err := adifio.Create(output)
				if err != nil {
					return err
				}
				defer wc.Close() //nolint:errcheck
				w = wc
			}

			seq := func(yield func(models.QSO) bool) {
				for _, q := range qsos {
					if !yield(q) {
						return
					}
				}
			}
			n, err := adif.WriteTo(w, iter.Seq[models.QSO](seq))
			if err != nil {
				return err
			}

			log.Info("export finished",
				zap.Int("qsos", len(qsos)),
				zap.Int64("bytes", n),
				zap.String("output", output))
			if output != "" {
				fmt.Printf("Exported %d QSOs to %s\n", len(qsos), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&band, "band", "", "only export QSOs on this band")
	cmd.Flags().StringVar(&mode, "mode", "", "only export QSOs in this mode")
	cmd.Flags().StringVar(&call, "call", "", "only export QSOs whose callsign contains this text")
	return cmd
}
