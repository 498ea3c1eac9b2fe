package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datainsights/internal/analysis"
	"github.com/KaramelBytes/datainsights/internal/parser"
	"github.com/KaramelBytes/datainsights/internal/utils"
)

var insJSON bool

var insightsCmd = &cobra.Command{
	Use:   "insights <files...>",
	Short: "Print structure information and descriptive statistics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := settings()
		if err != nil {
			return err
		}
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		opt := analysisOptions(c)
		results := make([]*analysis.Insights, 0, len(files))
		for _, path := range files {
			t, err := parser.ParseFile(path)
			if err != nil {
				return err
			}
			in, err := analysis.RunInsights(t, opt)
			if err != nil {
				return err
			}
			if insJSON {
				results = append(results, in)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), in.Markdown(opt.Normalize.Currency))
		}
		if insJSON {
			b, err := utils.PrettyJSON(results)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().BoolVar(&insJSON, "json", false, "print results as JSON")
}
