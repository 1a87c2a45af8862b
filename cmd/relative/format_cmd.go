package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	relative "github.com/goliatone/go-relative"
)

type formatOptions struct {
	removeTense bool
	pluralKey   string
	since       string
	outputJSON  bool
	now         func() time.Time
}

func newFormatCmd(root *rootOptions) *cobra.Command {
	opts := &formatOptions{now: time.Now}

	cmd := &cobra.Command{
		Use:   "format [seconds...]",
		Short: "Format one or more signed differences in seconds",
		Long: `Format signed differences in seconds. Positive values are in the
future, negative values in the past. Separate negative values from flags
with "--".

Examples:
  relative format -- -3600
  relative format --locale es 90 86400
  relative format --since 2024-01-02T15:04:05Z
  relative format --json -- -59`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.removeTense, "remove-tense", false, "drop past/future wrapping")
	cmd.Flags().StringVar(&opts.pluralKey, "plural-key", "", "parameter name receiving the magnitude")
	cmd.Flags().StringVar(&opts.since, "since", "", "RFC3339 timestamp to describe relative to now")
	cmd.Flags().BoolVar(&opts.outputJSON, "json", false, "print tokens as a JSON array")

	return cmd
}

func runFormat(cmd *cobra.Command, root *rootOptions, opts *formatOptions, args []string) error {
	inputs, err := opts.inputs(args)
	if err != nil {
		return err
	}

	var formatterOpts []relative.Option
	if opts.removeTense {
		formatterOpts = append(formatterOpts, relative.WithRemoveTense())
	}
	if opts.pluralKey != "" {
		formatterOpts = append(formatterOpts, relative.WithPluralKey(opts.pluralKey))
	}

	cfg, err := root.config(formatterOpts...)
	if err != nil {
		return err
	}

	formatter, err := cfg.Formatter(root.locale)
	if err != nil {
		return err
	}
	root.logger.Debug("formatter ready", "locale", formatter.Locale(), "tense", formatter.TenseMode().String())

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for _, in := range inputs {
		tokens, err := formatter.Format(in)
		if err != nil {
			return err
		}
		if opts.outputJSON {
			if err := enc.Encode(tokens); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, tokens.String())
	}

	return nil
}

func (o *formatOptions) inputs(args []string) ([]relative.Seconds, error) {
	var inputs []relative.Seconds

	if o.since != "" {
		t, err := time.Parse(time.RFC3339, o.since)
		if err != nil {
			return nil, fmt.Errorf("--since: %w", err)
		}
		inputs = append(inputs, relative.Seconds(t.Sub(o.now()).Seconds()))
	}

	for _, arg := range args {
		seconds, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid difference %q: %w", arg, err)
		}
		inputs = append(inputs, relative.Seconds(seconds))
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no difference given: pass seconds or --since")
	}
	return inputs, nil
}
