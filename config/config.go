package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Uniswap/lp-action-contracts/types"

	errorsmod "cosmossdk.io/errors"
)

const (
	// DefaultDestination is the generated test constants file kept in sync.
	DefaultDestination = "./src/test/utils/Constants.sol"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Config is the complete input of one populate-constants run.
type Config struct {
	// Destination is the file whose hex literals are rewritten.
	Destination string
	// BaseDir anchors relative artifact paths and the node_modules lookup.
	BaseDir string
	Targets []types.Target
	// AllowMissing skips placeholders absent from the destination instead of failing.
	AllowMissing bool
	// Check reports drift without writing the destination.
	Check    bool
	LogLevel string
}

// DefaultTargets returns the Uniswap contracts whose creation bytecode the
// test suite deploys.
func DefaultTargets() []types.Target {
	return []types.Target{
		{
			Name:   "UniswapV3Factory",
			Source: "@uniswap/v3-core/artifacts/contracts/UniswapV3Factory.sol/UniswapV3Factory.json",
		},
		{
			Name:   "NonfungiblePositionManager",
			Source: "@uniswap/v3-periphery/artifacts/contracts/NonfungiblePositionManager.sol/NonfungiblePositionManager.json",
		},
		{
			Name:   "SwapRouter02",
			Source: "@uniswap/swap-router-contracts/artifacts/contracts/SwapRouter02.sol/SwapRouter02.json",
		},
	}
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Destination: DefaultDestination,
		BaseDir:     ".",
		Targets:     DefaultTargets(),
		LogLevel:    DefaultLogLevel,
	}
}

// Validate performs basic validation of the configuration.
func (c Config) Validate() error {
	if c.Destination == "" {
		return errorsmod.Wrap(types.ErrInvalidConfig, "destination must be set")
	}
	if len(c.Targets) == 0 {
		return errorsmod.Wrap(types.ErrInvalidConfig, "at least one target must be set")
	}

	seen := make(map[string]struct{}, len(c.Targets))
	for i, target := range c.Targets {
		if !identifierRegex.MatchString(target.Name) {
			return errorsmod.Wrapf(types.ErrInvalidConfig, "target %d: invalid placeholder name %q", i, target.Name)
		}
		if _, ok := seen[target.Name]; ok {
			return errorsmod.Wrapf(types.ErrInvalidConfig, "duplicate target %q", target.Name)
		}
		seen[target.Name] = struct{}{}

		if strings.TrimSpace(target.Source) == "" {
			return errorsmod.Wrapf(types.ErrInvalidConfig, "target %s: source must be set", target.Name)
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured log level.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, errorsmod.Wrapf(types.ErrInvalidConfig, "log level %q: %s", c.LogLevel, err)
	}
	return lvl, nil
}

// TargetNames returns the placeholder names in configuration order.
func (c Config) TargetNames() []string {
	names := make([]string, len(c.Targets))
	for i, t := range c.Targets {
		names[i] = t.Name
	}
	return names
}

func (c Config) String() string {
	return fmt.Sprintf(
		"destination=%s base_dir=%s targets=%s allow_missing=%t check=%t",
		c.Destination, c.BaseDir, strings.Join(c.TargetNames(), ","), c.AllowMissing, c.Check,
	)
}
