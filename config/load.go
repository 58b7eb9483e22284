package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/wtsi-npg/simple-stats/regression"
	"github.com/wtsi-npg/simple-stats/report"
)

const (
	// EnvPrefix is prepended to every environment variable override, e.g.
	// SIMPLE_STATS_SOLVER or SIMPLE_STATS_TELEMETRY_ENABLED.
	EnvPrefix = "SIMPLE_STATS"

	KeySolver           = "solver"
	KeyOutput           = "output"
	KeyBase             = "base"
	KeyPredictions      = "predictions"
	KeyTelemetryEnabled = "telemetry.enabled"
	KeyTelemetryService = "telemetry.service_name"
)

// Load reads configuration into v from the optional file at configPath,
// environment variables and any flags already bound to v, then applies
// defaults and validates the result.
func Load(v *viper.Viper, configPath string) (Config, error) {
	var cfg Config

	v.SetEnvPrefix(EnvPrefix)
	// Allow nested env vars to be read with underscore separators.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Env vars are only consulted for keys viper already knows about.
	v.SetDefault(KeySolver, regression.SolverClosedForm)
	v.SetDefault(KeyOutput, report.FormatText)
	v.SetDefault(KeyBase, regression.DefaultBase)
	v.SetDefault(KeyPredictions, []string{})
	v.SetDefault(KeyTelemetryEnabled, false)
	v.SetDefault(KeyTelemetryService, defaultServiceName)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		evalPointHook,
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.setDefaults()

	return cfg, cfg.Validate()
}

// ParseConfig attempts to read and parse configuration from the given file
// path using a fresh viper instance.
func ParseConfig(configPath string) (Config, error) {
	return Load(viper.New(), configPath)
}

// evalPointHook decodes "<label>=<point>" strings into regression.EvalPoint.
var evalPointHook mapstructure.DecodeHookFuncType = func(
	from reflect.Type,
	to reflect.Type,
	data interface{},
) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(regression.EvalPoint{}) {
		return data, nil
	}
	return parseEvalPoint(reflect.ValueOf(data).String())
}
