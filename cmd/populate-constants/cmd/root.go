package cmd

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/Uniswap/lp-action-contracts/config"
	"github.com/Uniswap/lp-action-contracts/syncer"

	"cosmossdk.io/log"
)

// NewRootCmd creates the populate-constants command. Run without flags it
// syncs the default Uniswap artifacts into ./src/test/utils/Constants.sol.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "populate-constants",
		Short: "Inject compiled contract bytecode into the test constants file",
		Long: `Reads the creation bytecode of each configured contract artifact and
rewrites the matching "<Name> = hex'...'" literals of the destination file.

Artifact sources are package specifiers resolved through node_modules, or
paths relative to --base-dir. Additional targets can be listed as [[targets]]
tables in the file given with --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewViper(cmd.Flags())
			if err != nil {
				return err
			}

			lvl, err := config.Config{LogLevel: cast.ToString(v.Get(config.FlagLogLevel))}.Level()
			if err != nil {
				return err
			}
			logger := NewLogger(cmd.ErrOrStderr(), lvl)

			cfg, err := config.Load(v, logger)
			if err != nil {
				return err
			}
			logger.Debug("resolved configuration", "config", cfg.String())

			_, err = syncer.Run(cmd.Context(), cfg, logger)
			return err
		},
	}

	config.AddFlags(rootCmd.Flags())
	return rootCmd
}

// NewLogger returns the console logger used by the command.
func NewLogger(w io.Writer, lvl zerolog.Level) log.Logger {
	return log.NewLogger(w, log.LevelOption(lvl), log.ColorOption(false))
}
