// Command relative prints localized relative times.
//
// Usage:
//
//	relative format -- -3600          # an hour ago
//	relative format --locale es 90    # dentro de un minuto
//	relative format --json --file locales/en.yaml -- 59
//	relative locales
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	relative "github.com/goliatone/go-relative"
)

// envConfig supplies flag defaults
type envConfig struct {
	Locale   string   `env:"RELATIVE_LOCALE" envDefault:"en"`
	Files    []string `env:"RELATIVE_FILES" envSeparator:","`
	LogLevel string   `env:"RELATIVE_LOG_LEVEL" envDefault:"warn"`
}

type rootOptions struct {
	locale   string
	files    []string
	logLevel string

	logger *slog.Logger
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "relative: load .env: %v\n", err)
		os.Exit(1)
	}

	var defaults envConfig
	if err := env.Parse(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "relative: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(defaults, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(defaults envConfig, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "relative",
		Short:         "Format signed second differences as localized relative times",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			opts.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.locale, "locale", "l", defaults.Locale, "locale to format with")
	root.PersistentFlags().StringSliceVarP(&opts.files, "file", "f", defaults.Files, "locale file (json, yaml, toml); repeat to merge. Defaults to the embedded locales")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "debug, info, warn or error")

	root.AddCommand(newFormatCmd(opts))
	root.AddCommand(newLocalesCmd(opts))

	return root
}

func (o *rootOptions) loader() relative.Loader {
	if len(o.files) == 0 {
		return relative.EmbeddedLoader()
	}
	return relative.NewFileLoader(o.files...)
}

func (o *rootOptions) config(formatterOpts ...relative.Option) (*relative.Config, error) {
	o.logger.Debug("loading locales", "files", strings.Join(o.files, ","), "locale", o.locale)

	formatterOpts = append(formatterOpts, relative.WithLogger(o.logger))
	return relative.NewConfig(
		relative.WithLoader(o.loader()),
		relative.WithDefaultLocale(o.locale),
		relative.WithFormatterOptions(formatterOpts...),
	)
}

func newLocalesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales available from the loaded files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := relative.NewStaticStoreFromLoader(opts.loader())
			if err != nil {
				return err
			}
			for _, locale := range store.Locales() {
				fmt.Fprintln(cmd.OutOrStdout(), locale)
			}
			return nil
		},
	}
}
