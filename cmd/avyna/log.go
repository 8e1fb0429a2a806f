package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/query"
	"github.com/aretw0/avyna/pkg/render"
)

var logJSON bool

var logCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Show one symptom log",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		entry, err := app.SymptomLog(core.LogID(args[0])).Get(context.Background())
		if err != nil {
			fatal("Error fetching log", loggedOut(err))
		}

		if logJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(entry)
			return
		}

		fmt.Printf("Log %s on %s\n", entry.ID, entry.Date)
		fmt.Printf("  Condition: %s\n", entry.Condition)
		fmt.Printf("  Symptoms:  %s\n", entry.Symptoms)
		fmt.Printf("  Pain:      %d/10\n", entry.PainLevel)
		fmt.Printf("  Mood:      %s\n", entry.Mood)
		fmt.Printf("  Cycle day: %d\n", entry.CycleDay)
		if entry.Notes != "" {
			fmt.Printf("  Notes:     %s\n", entry.Notes)
		}
		if entry.Recommendation != nil {
			fmt.Println()
			_ = render.Recommendation(os.Stdout, *entry.Recommendation)
		}
	},
}

var recommendationCmd = &cobra.Command{
	Use:     "recommendation <id>",
	Aliases: []string{"rec"},
	Short:   "Show the recommendation generated for a log",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		rec, err := app.Recommendation(core.LogID(args[0])).Get(context.Background())
		if err != nil {
			fatal("Error fetching recommendation", loggedOut(err))
		}
		if err := render.Recommendation(os.Stdout, rec); err != nil {
			fatal("Error printing recommendation", err)
		}
	},
}

// loggedOut reports a disabled query as a missing session.
func loggedOut(err error) error {
	if errors.Is(err, query.ErrDisabled) {
		return core.ErrNoCredential
	}
	return err
}

func init() {
	logCmd.Flags().BoolVar(&logJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(logCmd, recommendationCmd)
}
