package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Print the backend endpoints resolved from the configuration",
	Long:  `Print the backend endpoint table resolved from the base URL. No requests are made.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commonSetUp(cmd); err != nil {
			return err
		}

		endpoints, err := services.NewEndpoints(appCfg.API.BaseURL)
		if err != nil {
			return err
		}

		log.Debug().Str("api_base_url", appCfg.API.BaseURL).Msg("printing endpoints")
		return printEndpoints(cmd.OutOrStdout(), endpoints)
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}

func printEndpoints(w io.Writer, endpoints services.Endpoints) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range endpoints.List() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.URL); err != nil {
			return err
		}
	}
	return tw.Flush()
}
