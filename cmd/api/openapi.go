package main

import (
	"github.com/spf13/cobra"

	"github.com/tweesky/treedoc/internal/apidoc"
	"github.com/tweesky/treedoc/internal/config"
)

// newOpenAPICmd prints the API description served at /openapi.json.
func newOpenAPICmd() *cobra.Command {
	var (
		format    string
		serverURL string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Long: `Print the OpenAPI 3.0.2 document describing every operation of the API.
The server URL defaults to SERVER_URL from the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				serverURL = cfg.ServerURL
			}

			_, doc, err := buildDocument(serverURL)
			if err != nil {
				return err
			}
			out, err := apidoc.Render(doc, format)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", apidoc.FormatJSON, "output format (json or yaml)")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "server URL to advertise in the document")
	return cmd
}
