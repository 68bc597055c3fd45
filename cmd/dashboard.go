package cmd

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"marc/page"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render every configured chart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asHTML, _ := cmd.Flags().GetBool("html")
		ctx := cmd.Context()

		dash, cleanup, err := buildDashboard(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		charts, err := dash.Render(ctx)
		if err != nil {
			return err
		}
		slog.Debug("dashboard rendered", "charts", len(charts))

		out := cmd.OutOrStdout()
		if asHTML {
			body, err := page.Build(page.Dashboard{
				Title:      dash.Title,
				ChartJSURL: cfg.Server.ChartJSURL,
				Charts:     charts,
			})
			if err != nil {
				return err
			}
			_, err = out.Write(body)
			return err
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(charts)
	},
}

func init() {
	dashboardCmd.Flags().Bool("html", false, "write the dashboard page instead of JSON")
}
