package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/docnote/internal/pipeline"
	"github.com/olehluchkiv/docnote/internal/render"
	"github.com/olehluchkiv/docnote/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		flags     pipelineFlags
		port      int
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve [path-or-url]",
		Short: "Serve the annotated documentation over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, cleanup, err := pipeline.Run(cmd.Context(), flags.config(inputArg(args)), a.logger)
			defer cleanup()
			if err != nil {
				a.logger.Error("annotation failed", "error", err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Starting server on http://localhost:%d\n", port)
			return server.Serve(cmd.Context(), report, server.Options{
				Port:        port,
				OpenBrowser: !noBrowser,
				Render:      render.Options{PublicOnly: flags.publicOnly},
			}, a.logger)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP server port")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "skip auto-opening browser")
	return cmd
}
