package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lexikon-backend/internal/app"
	"github.com/heartmarshall/lexikon-backend/internal/config"
	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/service/dictionary"
	"github.com/heartmarshall/lexikon-backend/internal/service/translation"
	"github.com/heartmarshall/lexikon-backend/internal/transport/rest"
)

// depsBuilder wires the services for one command invocation from the
// config file at configPath.
type depsBuilder func(ctx context.Context, configPath string) (*app.Deps, *config.Config, error)

// wireFunc is a depsBuilder with the --config value already applied.
type wireFunc func(ctx context.Context) (*app.Deps, *config.Config, error)

func buildDeps(ctx context.Context, configPath string) (*app.Deps, *config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cfg.Log)
	deps, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return deps, cfg, nil
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(buildDeps)
}

func newRootCmdWith(build depsBuilder) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "lexikon",
		Short:        "German dictionary lookup and translation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")

	wire := func(ctx context.Context) (*app.Deps, *config.Config, error) {
		return build(ctx, configPath)
	}
	root.AddCommand(
		newLookupCmd(wire),
		newTranslateCmd(wire),
		newSuggestCmd(wire),
	)
	return root
}

func newLookupCmd(build wireFunc) *cobra.Command {
	var external bool

	cmd := &cobra.Command{
		Use:   "lookup <term>",
		Short: "Resolve a term through the lexicon and, optionally, external services",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cfg, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			entries, err := deps.Dictionary.Resolve(cmd.Context(), dictionary.ResolveInput{
				Term:          strings.Join(args, " "),
				AllowExternal: external,
			})
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("no matching terms found")
			}
			if err != nil {
				return err
			}

			out := make([]rest.EntryResponse, 0, len(entries))
			for _, e := range entries {
				out = append(out, rest.NewEntryResponse(e, cfg.Lexicon.Language))
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&external, "external", false, "query the definition and translation services on a local miss")
	return cmd
}

func newTranslateCmd(build wireFunc) *cobra.Command {
	var source, target string

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text between supported languages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, _, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			res, err := deps.Translation.Translate(cmd.Context(), translation.Input{
				Text:   strings.Join(args, " "),
				Source: source,
				Target: target,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rest.NewTranslateResponse(res))
		},
	}
	cmd.Flags().StringVar(&source, "source", "de", "source language code")
	cmd.Flags().StringVar(&target, "target", "en", "target language code")
	return cmd
}

func newSuggestCmd(build wireFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "List the curated headwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			return printJSON(cmd.OutOrStdout(), deps.Dictionary.Suggestions())
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
