package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/docnote/internal/annotator"
	"github.com/olehluchkiv/docnote/internal/manifest"
)

func newRewriteCmd(a *app) *cobra.Command {
	var (
		file       string
		ds         manifest.DirectiveSpec
		strictArgs bool
		noParser   bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Apply a single directive to a docstring read from stdin or --file",
		Example: `  echo "Fetch rows.

  Args:
      table: Table name." | docnote rewrite --kind deprecated --version 2.0 --argument table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := ds.Directive()
			if err != nil {
				return err
			}

			var doc []byte
			if file != "" {
				doc, err = os.ReadFile(file)
			} else {
				doc, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("reading docstring: %w", err)
			}

			var editor annotator.ArgumentEditor = annotator.NewGoogleEditor()
			if noParser {
				editor = annotator.NewNoopEditor()
			}
			an := annotator.New(annotator.Config{Editor: editor, StrictArguments: strictArgs}, a.logger)

			out, err := an.Apply(string(doc), d)
			if err != nil {
				a.logger.Error("rewrite failed", "directive", d.String(), "error", err)
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the docstring from a file instead of stdin")
	cmd.Flags().StringVar(&ds.Kind, "kind", "", "directive kind (public, versionadded, deprecated)")
	cmd.Flags().StringVar(&ds.Version, "version", "", "version for versionadded/deprecated")
	cmd.Flags().StringVar(&ds.Message, "message", "", "optional note message")
	cmd.Flags().StringVar(&ds.Argument, "argument", "", "target an Args entry instead of the summary")
	cmd.Flags().BoolVar(&strictArgs, "strict-args", false, "fail argument directives when no docstring parser is available")
	cmd.Flags().BoolVar(&noParser, "no-parser", false, "skip argument directives instead of parsing Args sections")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
