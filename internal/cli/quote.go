package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justadataconstruct/xivquote/internal/cache"
	"github.com/justadataconstruct/xivquote/internal/config"
	"github.com/justadataconstruct/xivquote/internal/logging"
	"github.com/justadataconstruct/xivquote/internal/lore"
	"github.com/justadataconstruct/xivquote/internal/quote"
	"github.com/justadataconstruct/xivquote/internal/tui"
)

// refreshNotice is printed before the category cache is rebuilt.
const refreshNotice = "No cache, calling API..."

// executeQuote resolves the cache, runs the quote workflow and prints the result.
func executeQuote(cmd *cobra.Command, cfg *config.Config, deps Deps, arg string, noStyle bool) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	path, err := cache.LocatePath(cfg.Cache.Dir, config.AppDirName())
	if err != nil {
		return err
	}

	client := lore.NewClient(lore.Config{
		Endpoint: cfg.Lore.Endpoint,
		Timeout:  cfg.Lore.Timeout,
		Roller:   deps.Roller,
	})
	if deps.HTTPClient != nil {
		client.HTTPClient = deps.HTTPClient
	}

	svc, err := quote.NewService(&quote.Config{Fetcher: client, Roller: deps.Roller})
	if err != nil {
		return err
	}

	result, err := svc.Run(ctx, quote.Input{
		CachePath: path,
		Arg:       arg,
		OnRefresh: func() { _, _ = fmt.Fprintln(out, refreshNotice) },
	})
	if err != nil {
		return err
	}

	styled := cfg.Output.Style && !noStyle && tui.IsTerminal(out)
	_, _ = fmt.Fprintln(out, tui.RenderQuote(result.Text, styled))

	log.Debug().
		Ctx(ctx).
		Str("operation", "quote").
		Str("category", result.Category.Key).
		Bool("fallback", result.Fallback).
		Bool("refreshed", result.Refreshed).
		Msg("quote printed")

	return nil
}
