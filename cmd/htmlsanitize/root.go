package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/njchilds90/htmlsanitizer"
	"github.com/spf13/cobra"
)

type sanitizeOptions struct {
	policyFile       string
	strict           bool
	preserveComments bool
	encodeIntl       bool
	linkify          bool
	maxDepth         int
	verbose          bool
}

func rootCmd() *cobra.Command {
	var opts sanitizeOptions

	cmd := &cobra.Command{
		Use:   "htmlsanitize [file...]",
		Short: "Sanitize untrusted HTML",
		Long: `htmlsanitize reads HTML from the named files (or stdin) and writes
the sanitized result to stdout.

The policy starts from the default content policy, or the strict
policy with --strict, or a YAML policy file with --policy. Flags that
are set explicitly override the policy.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.policy(cmd)
			if err != nil {
				return err
			}
			return eachInput(cmd, args, func(r io.Reader, w io.Writer) error {
				return htmlsanitizer.SanitizeTo(cmd.Context(), w, r, p)
			})
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.policyFile, "policy", "p", "", "YAML policy file")
	f.BoolVar(&opts.strict, "strict", false, "Start from the strict policy")
	f.BoolVar(&opts.preserveComments, "preserve-comments", false, "Keep HTML comments")
	f.BoolVar(&opts.encodeIntl, "encode-intl", false, "Write text characters as numeric character references")
	f.BoolVar(&opts.linkify, "linkify", false, "Turn plain-text URLs into links")
	f.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum element nesting depth (0 = unlimited)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	cmd.MarkFlagsMutuallyExclusive("policy", "strict")

	cmd.AddCommand(
		serializeCmd(&opts),
		versionCmd(),
	)
	return cmd
}

func (o *sanitizeOptions) policy(cmd *cobra.Command) (*htmlsanitizer.Policy, error) {
	var p *htmlsanitizer.Policy
	switch {
	case o.policyFile != "":
		var err error
		if p, err = htmlsanitizer.LoadPolicyFile(o.policyFile); err != nil {
			return nil, err
		}
	case o.strict:
		p = htmlsanitizer.StrictPolicy()
	default:
		p = htmlsanitizer.DefaultPolicy()
	}

	f := cmd.Flags()
	if f.Changed("preserve-comments") {
		p.PreserveComments = o.preserveComments
	}
	if f.Changed("encode-intl") {
		p.EntityEncodeIntlCharacters = o.encodeIntl
	}
	if f.Changed("linkify") {
		p.Linkify = o.linkify
	}
	if f.Changed("max-depth") {
		p.MaxDepth = o.maxDepth
	}
	p.Logger = o.logger(cmd)
	return p, nil
}

func (o *sanitizeOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// eachInput runs fn for every named file, or once for stdin when no files
// are named, writing to a buffered stdout.
func eachInput(cmd *cobra.Command, args []string, fn func(io.Reader, io.Writer) error) error {
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	if len(args) == 0 {
		if err := fn(cmd.InOrStdin(), out); err != nil {
			return err
		}
		return out.Flush()
	}
	for _, name := range args {
		if err := runFile(name, out, fn); err != nil {
			return err
		}
	}
	return out.Flush()
}

func runFile(name string, w io.Writer, fn func(io.Reader, io.Writer) error) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f, w)
}
