package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qsopipe/qsopipe/pkg/adif"
	"github.com/qsopipe/qsopipe/pkg/logger"
	"github.com/qsopipe/qsopipe/pkg/models"
	"github.com/qsopipe/qsopipe/pkg/storage"
)

func newLogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect and edit the logbook",
	}
	cmd.AddCommand(newLogListCmd(opts))
	cmd.AddCommand(newLogDeleteCmd(opts))
	return cmd
}

func newLogListCmd(opts *rootOptions) *cobra.Command {
	var (
		call  string
		band  string
		mode  string
		grid  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List QSOs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			store, err := storage.Open(cfg.Storage.Path, logger.Get())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			f := storage.Filter{Call: call, Band: band, Mode: mode, Grid: grid, Limit: limit}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTIME\tCALL\tBAND\tMODE\tFREQ\tGRID")
			n := 0
			err = store.Iterate(cmd.Context(), f, func(q models.QSO) error {
				freq := ""
				if q.HasFreq() {
					freq = adif.FormatFreq(q.FreqMHz)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					q.ID,
					q.StartAt.Format("2006-01-02"),
					q.StartAt.Format("15:04:05"),
					q.Call, q.Band, q.Mode, freq, q.Grid)
				n++
				return nil
			})
			if err != nil {
				return err
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d QSOs\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&call, "call", "", "callsign substring match")
	cmd.Flags().StringVar(&band, "band", "", "exact band match")
	cmd.Flags().StringVar(&mode, "mode", "", "exact mode match")
	cmd.Flags().StringVar(&grid, "grid", "", "exact grid square match")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to print (0 = all)")
	return cmd
}

func newLogDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one QSO by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			store, err := storage.Open(cfg.Storage.Path, logger.Get())
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			deleted, err := store.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("no QSO with id %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted QSO %d\n", id)
			return nil
		},
	}
}
