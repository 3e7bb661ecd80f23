package cli

import (
	"fmt"
	"net/http"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/justadataconstruct/xivquote/internal/config"
	"github.com/justadataconstruct/xivquote/internal/logging"
)

// Deps lets tests replace the sources of randomness and the HTTP transport.
// Zero values select the production defaults.
type Deps struct {
	Roller     dice.Roller
	HTTPClient *http.Client
}

// NewRootCmd creates the root Cobra command for the xivquote CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithDeps(ver, Deps{})
}

// NewRootCmdWithDeps creates the root command with explicit dependencies for testability.
func NewRootCmdWithDeps(ver string, deps Deps) *cobra.Command {
	cmd, _ := newRootCmd(ver, deps)
	return cmd
}

// rootState is the per-invocation state shared by the root command hooks.
type rootState struct {
	cfg       *config.Config
	logResult *logging.LogPathResult
	noStyle   bool
}

func newRootCmd(ver string, deps Deps) (*cobra.Command, *rootState) {
	state := &rootState{}

	cmd := &cobra.Command{
		Use:   "xivquote [refresh]",
		Short: "Print a random line of Final Fantasy XIV lore",
		Long: `xivquote prints a random NPC yell, minion description or mount description
from the XIVAPI lore database.

The number of entries in each category is cached locally so a normal run needs a
single request. Pass "refresh" to rebuild that cache.`,
		Version: ver,
		Example: rootCmdExample,
		// Only a literal "refresh" in first position means anything; other
		// arguments and unknown flags are ignored.
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load("")
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			state.cfg = loaded

			result := setupLogging(cmd, state.cfg)
			state.logResult = &result
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			err := executeQuote(cmd, state.cfg, deps, arg, state.noStyle)
			if err != nil {
				// Cobra skips PersistentPostRunE when RunE fails.
				logging.FromContext(cmd.Context()).Error().Ctx(cmd.Context()).Err(err).Msg("quote failed")
				_ = cleanupLogging(state.logResult)
			}
			return err
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(state.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&state.noStyle, "no-style", false, "print the quote without dim/italic styling")

	return cmd, state
}

const rootCmdExample = `  # Print a random quote
  xivquote

  # Rebuild the category cache, then print a quote
  xivquote refresh

  # Plain output, with debug logs on stderr
  xivquote --no-style --debug`
