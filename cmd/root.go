package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wtsi-npg/simple-stats/analysis"
	"github.com/wtsi-npg/simple-stats/config"
	"github.com/wtsi-npg/simple-stats/regression"
	"github.com/wtsi-npg/simple-stats/report"
	"github.com/wtsi-npg/simple-stats/telemetry"
)

const (
	logLevelJSON = "json"
	logLevelText = "text"

	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagSolver      = "solver"
	flagOutput      = "output"
	flagPredictions = "predict"
)

// NewRootCmd returns the simple-stats command. It reads tab separated
// <predictor>\t<response> rows from stdin, fits an OLS line and writes the
// summary and back-transformed predictions to stdout.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "simple-stats",
		Args:  cobra.NoArgs,
		Short: "Fits a linear regression to two tab separated columns read from stdin",
		Long: `Fits response = intercept + slope * predictor by ordinary least squares,
prints the fit summary and predictions at log10(100) and log10(1000)
back-transformed with 10^p.

Example:
  cat some_data.tsv | grep -v id_run | cut -d$'\t' -f6,7 | simple-stats`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd, v)
		},
	}

	rootCmd.Flags().String(flagConfig, "", "Path to an optional TOML or YAML configuration file")
	rootCmd.Flags().String(flagLogLevel, zerolog.InfoLevel.String(), "logging level")
	rootCmd.Flags().String(flagLogFormat, logLevelText, "logging format; must be either json or text")
	rootCmd.Flags().String(flagSolver, regression.SolverClosedForm,
		fmt.Sprintf("least squares solver; one of %v", regression.SupportedSolvers))
	rootCmd.Flags().String(flagOutput, report.FormatText,
		fmt.Sprintf("output format; one of %v", report.SupportedFormats))
	rootCmd.Flags().StringSlice(flagPredictions, nil,
		"evaluation points as <label>=<point>, e.g. 100=2,1000=3")

	_ = v.BindPFlag(config.KeySolver, rootCmd.Flags().Lookup(flagSolver))
	_ = v.BindPFlag(config.KeyOutput, rootCmd.Flags().Lookup(flagOutput))
	_ = v.BindPFlag(config.KeyPredictions, rootCmd.Flags().Lookup(flagPredictions))

	return rootCmd
}

func runFit(cmd *cobra.Command, v *viper.Viper) error {
	logger, err := getLogger(cmd)
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return err
	}

	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	solver, err := regression.NewSolver(cfg.Solver)
	if err != nil {
		return err
	}

	var metrics *telemetry.Metrics
	if cfg.Telemetry.Enabled {
		if metrics, err = telemetry.New(cfg.Telemetry.ServiceName); err != nil {
			return fmt.Errorf("failed to start telemetry: %w", err)
		}
		defer metrics.Log(logger)
	}

	a := analysis.New(logger, solver, cfg.Predictions, cfg.Base, metrics)
	rep, err := a.Run(cmd.InOrStdin())
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), cfg.Output, rep)
}

func getLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	logLvlStr, err := cmd.Flags().GetString(flagLogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	logLvl, err := zerolog.ParseLevel(logLvlStr)
	if err != nil {
		return zerolog.Logger{}, err
	}

	logFormatStr, err := cmd.Flags().GetString(flagLogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}

	var logWriter io.Writer
	switch strings.ToLower(logFormatStr) {
	case logLevelJSON:
		logWriter = cmd.ErrOrStderr()

	case logLevelText:
		logWriter = zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}

	default:
		return zerolog.Logger{}, fmt.Errorf("invalid logging format: %s", logFormatStr)
	}

	return zerolog.New(logWriter).Level(logLvl).With().Timestamp().Logger(), nil
}
