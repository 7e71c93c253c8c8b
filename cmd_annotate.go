package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/docnote/internal/pipeline"
	"github.com/olehluchkiv/docnote/internal/render"
)

// pipelineFlags are shared by annotate and serve.
type pipelineFlags struct {
	manifest          string
	filter            string
	includeUnexported bool
	strictArgs        bool
	noParser          bool
	publicOnly        bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.manifest, "manifest", os.Getenv("DOCNOTE_MANIFEST"), "manifest path (default <module root>/docnote.yaml)")
	cmd.Flags().StringVar(&f.filter, "filter", "", "package path prefix filter")
	cmd.Flags().BoolVar(&f.includeUnexported, "include-unexported", false, "include unexported symbols")
	cmd.Flags().BoolVar(&f.strictArgs, "strict-args", false, "fail argument directives when no docstring parser is available")
	cmd.Flags().BoolVar(&f.noParser, "no-parser", false, "skip argument directives instead of parsing Args sections")
	cmd.Flags().BoolVar(&f.publicOnly, "public-only", false, "only emit public symbols, without the public marker")
}

func (f *pipelineFlags) config(input string) pipeline.Config {
	return pipeline.Config{
		Input:             input,
		ManifestPath:      f.manifest,
		Filter:            f.filter,
		IncludeUnexported: f.includeUnexported,
		StrictArguments:   f.strictArgs,
		DisableParser:     f.noParser,
	}
}

func inputArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func newAnnotateCmd(a *app) *cobra.Command {
	var (
		flags  pipelineFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "annotate [path-or-url]",
		Short: "Apply the manifest and print the annotated documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "md" && format != "json" {
				return fmt.Errorf("unknown format %q (valid: md, json)", format)
			}

			report, cleanup, err := pipeline.Run(cmd.Context(), flags.config(inputArg(args)), a.logger)
			defer cleanup()
			if err != nil {
				a.logger.Error("annotation failed", "error", err)
				return err
			}

			opts := render.Options{PublicOnly: flags.publicOnly}
			var out []byte
			if format == "json" {
				out, err = render.JSON(report, opts)
				if err != nil {
					return err
				}
			} else {
				out = []byte(render.Markdown(report, opts))
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				a.logger.Error("failed to write output file", "error", err)
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d symbols to %s\n", len(render.Select(report, opts)), output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "md", "output format (md, json)")
	return cmd
}
