package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	dataPath   string
	outDir     string
	horizon    int
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aqi",
		Short: "Analyze and forecast the daily air quality of Delhi",
		Long: `Loads a daily AQI table, trains a random forest on the calendar features of each day
and forecasts the days that follow. Figures, a PDF report and the forecast are written to the
output directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Pipeline config file (JSON)")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Daily AQI csv file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(evaluateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q, %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// runCmd runs the whole pipeline
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train, forecast and write figures, the forecast and the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			_, err = run(cfg, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", defaultOutDir, "Output directory")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Days to forecast past the last observation (default 365)")
	return cmd
}

// evaluateCmd trains the model and prints its evaluation
func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Train the model and print its test partition scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			_, err = evaluate(cfg, cmd.OutOrStdout())
			return err
		},
	}
	return cmd
}

// resolveConfig loads the config file and applies any flags set on the command line
func resolveConfig(cmd *cobra.Command) (*config, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config, %w", err)
	}
	if cmd.Flags().Changed("data") || cfg.Data == "" {
		cfg.Data = dataPath
	}
	if f := cmd.Flags().Lookup("out"); f != nil && (f.Changed || cfg.Out == "") {
		cfg.Out = outDir
	}
	if cmd.Flags().Changed("horizon") {
		cfg.Options.HorizonDays = horizon
	}
	return cfg, cfg.validate()
}
