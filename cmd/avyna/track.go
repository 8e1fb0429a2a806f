package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna/pkg/render"
	"github.com/aretw0/avyna/pkg/validate"
)

var (
	trackSymptoms []string
	trackForm     validate.Track
	trackShowRec  bool
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Log today's symptoms",
	Long: `Log today's symptoms. The API answers with a recommendation for the log.

Symptoms: fatigue, cramps, headache, nausea, bloating.`,
	Example: `  avyna track --symptom fatigue --symptom cramps --pain 6 --mood Tired --cycle-day 12`,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		form := trackForm
		for _, s := range trackSymptoms {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "fatigue":
				form.Fatigue = true
			case "cramps":
				form.Cramps = true
			case "headache":
				form.Headache = true
			case "nausea":
				form.Nausea = true
			case "bloating":
				form.Bloating = true
			default:
				fatal("Invalid symptom", fmt.Errorf("unknown symptom %q", s))
			}
		}

		app := openApp()
		resp, err := app.Track(context.Background(), form)
		if err != nil {
			fatal("Error logging symptoms", err)
		}

		fmt.Printf("%s (log %s)\n", resp.Message, resp.LogID)
		if trackShowRec {
			if err := render.Recommendation(os.Stdout, resp.Recommendation); err != nil {
				fatal("Error printing recommendation", err)
			}
		}
	},
}

func init() {
	trackCmd.Flags().StringSliceVarP(&trackSymptoms, "symptom", "s", nil, "Symptom to record (repeatable)")
	trackCmd.Flags().IntVar(&trackForm.PainLevel, "pain", 0, "Pain level from 0 to 10")
	trackCmd.Flags().StringVar(&trackForm.Mood, "mood", "", "How you feel")
	trackCmd.Flags().IntVar(&trackForm.CycleDay, "cycle-day", 0, "Day of the cycle (1-31)")
	trackCmd.Flags().StringVar(&trackForm.Notes, "notes", "", "Free text notes")
	trackCmd.Flags().BoolVar(&trackShowRec, "show-recommendation", true, "Print the generated recommendation")
	rootCmd.AddCommand(trackCmd)
}
