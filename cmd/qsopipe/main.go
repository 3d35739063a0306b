package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/qsopipe/qsopipe/pkg/config"
	"github.com/qsopipe/qsopipe/pkg/logger"
)

var version = "0.1.0"

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	dbPath     string
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "qsopipe",
		Short: "qsopipe - ADIF log ingest, export, and awards statistics",
		Long: `qsopipe imports ADIF (Amateur Data Interchange Format) logs into a local
logbook, exports them back out as streaming ADIF, and computes award
statistics (DXCC, VUCC, per-band grids) over the logged contacts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to the logbook database")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qsopipe v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newAwardsCmd(opts))
	root.AddCommand(newLogCmd(opts))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration from file and flags.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Encoding:    cfg.Logging.Encoding,
		Development: cfg.Logging.Development,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}
