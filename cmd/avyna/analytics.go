package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna/pkg/render"
)

var (
	analyticsDays int
	analyticsJSON bool
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarise symptom patterns",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		a, err := app.Analytics(analyticsDays).Get(context.Background())
		if err != nil {
			fatal("Error fetching analytics", loggedOut(err))
		}

		if analyticsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(a)
			return
		}
		if err := render.Analytics(os.Stdout, a); err != nil {
			fatal("Error printing analytics", err)
		}
	},
}

func init() {
	analyticsCmd.Flags().IntVar(&analyticsDays, "days", 30, "Period to analyse")
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(analyticsCmd)
}
