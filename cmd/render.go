package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"marc/chart"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one chart configuration from a JSON input file",
	Example: `  marc render -i chart.json
  echo '{"elementId":"c1","labels":["pass"],"values":[1],"colors":["#10b981"]}' | marc render --script`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		asScript, _ := cmd.Flags().GetBool("script")

		in, err := readInput(cmd, input)
		if err != nil {
			return err
		}
		return renderChart(cmd.OutOrStdout(), in, asScript)
	},
}

func init() {
	renderCmd.Flags().StringP("input", "i", "-", "chart input file, - for stdin")
	renderCmd.Flags().Bool("script", false, "emit the Chart.js constructor call instead of the bare config")
}

func readInput(cmd *cobra.Command, path string) (chart.ChartInput, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return chart.ChartInput{}, err
		}
		defer f.Close()
		r = f
	}

	var in chart.ChartInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return chart.ChartInput{}, fmt.Errorf("failed to decode chart input: %w", err)
	}
	return in, nil
}

func renderChart(w io.Writer, in chart.ChartInput, asScript bool) error {
	if asScript {
		script, err := chart.RenderScript(in)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, script)
		return err
	}

	cfg, err := chart.Render(in)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(cfg)
}
