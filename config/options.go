package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Uniswap/lp-action-contracts/types"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
)

const (
	FlagConfig       = "config"
	FlagDestination  = "destination"
	FlagBaseDir      = "base-dir"
	FlagAllowMissing = "allow-missing"
	FlagCheck        = "check"
	FlagLogLevel     = "log-level"

	// KeyTargets holds the [[targets]] entries of a config file.
	KeyTargets = "targets"

	// EnvPrefix prefixes the environment variables overriding flags,
	// e.g. POPULATE_CONSTANTS_DESTINATION.
	EnvPrefix = "POPULATE_CONSTANTS"
)

// AppOptions is the read-only view of configuration values, satisfied by *viper.Viper.
type AppOptions interface {
	Get(key string) interface{}
}

// AddFlags registers the populate-constants flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	defaults := DefaultConfig()

	fs.String(FlagConfig, "", "optional config file (toml, yaml or json) listing [[targets]]")
	fs.String(FlagDestination, defaults.Destination, "file whose hex literals are rewritten")
	fs.String(FlagBaseDir, defaults.BaseDir, "directory relative artifact paths and node_modules lookups start from")
	fs.Bool(FlagAllowMissing, false, "skip placeholders missing from the destination instead of failing")
	fs.Bool(FlagCheck, false, "fail if the destination is out of sync instead of rewriting it")
	fs.String(FlagLogLevel, defaults.LogLevel, "log level (trace|debug|info|warn|error)")
}

// NewViper binds fs and the environment to a fresh viper instance and reads
// the config file named by the --config flag, if any.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidConfig, err.Error())
	}

	if file := v.GetString(FlagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "read config file %s: %s", file, err)
		}
	}

	return v, nil
}

// Load builds and validates a Config from appOpts, falling back to
// DefaultConfig for unset values.
func Load(appOpts AppOptions, logger log.Logger) (Config, error) {
	cfg := DefaultConfig()
	if appOpts == nil {
		logger.Error("app options is nil, using default config")
		return cfg, cfg.Validate()
	}

	if destination := cast.ToString(appOpts.Get(FlagDestination)); destination != "" {
		cfg.Destination = destination
	}
	if baseDir := cast.ToString(appOpts.Get(FlagBaseDir)); baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if level := cast.ToString(appOpts.Get(FlagLogLevel)); level != "" {
		cfg.LogLevel = level
	}
	cfg.AllowMissing = cast.ToBool(appOpts.Get(FlagAllowMissing))
	cfg.Check = cast.ToBool(appOpts.Get(FlagCheck))

	targets, err := GetTargets(appOpts, logger)
	if err != nil {
		return Config{}, err
	}
	cfg.Targets = targets

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GetTargets reads the target list from appOpts. Each entry is a table with
// name, source and an optional field. Without entries the default Uniswap
// targets are returned.
func GetTargets(appOpts AppOptions, logger log.Logger) ([]types.Target, error) {
	raw := appOpts.Get(KeyTargets)
	if raw == nil {
		logger.Debug("no targets configured, using defaults")
		return DefaultTargets(), nil
	}

	entries, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "%s must be a list: %s", KeyTargets, err)
	}

	targets := make([]types.Target, 0, len(entries))
	for i, entry := range entries {
		fields, err := cast.ToStringMapStringE(entry)
		if err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "%s[%d]: %s", KeyTargets, i, err)
		}
		targets = append(targets, types.Target{
			Name:   fields["name"],
			Source: fields["source"],
			Field:  fields["field"],
		})
	}

	logger.Debug("loaded targets from config", "count", len(targets))
	return targets, nil
}
