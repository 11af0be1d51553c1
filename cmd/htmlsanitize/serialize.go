package main

import (
	"io"

	"github.com/njchilds90/htmlsanitizer/serialize"
	"github.com/spf13/cobra"
)

func serializeCmd(opts *sanitizeOptions) *cobra.Command {
	var (
		perUnit      bool
		guard        bool
		booleanAttrs []string
	)

	cmd := &cobra.Command{
		Use:   "serialize [file...]",
		Short: "Re-serialize HTML without filtering",
		Long: `Tokenize HTML and write it back out through the serializer without
applying any allow-list. Every tag and attribute in the input survives;
only the escaping, void element and boolean attribute rules apply.

Use this on markup that has already been filtered, or to see how the
serializer escapes a given input.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.policy(cmd)
			if err != nil {
				return err
			}
			serOpts := []serialize.Option{
				serialize.WithLogger(p.Logger),
				serialize.WithBooleanAttributes(append(p.BooleanAttributes, booleanAttrs...)...),
			}
			if perUnit {
				serOpts = append(serOpts, serialize.WithSurrogateMode(serialize.SurrogatesPerUnit))
			}
			if guard {
				serOpts = append(serOpts, serialize.WithCommentGuard())
			}
			return eachInput(cmd, args, func(r io.Reader, w io.Writer) error {
				s, err := serialize.New(w, p, serOpts...)
				if err != nil {
					return err
				}
				return serialize.Stream(r, s)
			})
		},
	}

	f := cmd.Flags()
	f.BoolVar(&perUnit, "per-unit-surrogates", false, "Encode characters outside the BMP as two UTF-16 code unit references")
	f.BoolVar(&guard, "comment-guard", true, "Reject comments whose body could close the comment")
	f.StringSliceVar(&booleanAttrs, "boolean-attr", nil, "Additional attribute names written without a value")

	return cmd
}
