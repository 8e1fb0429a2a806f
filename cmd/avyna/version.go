package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of avyna",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("avyna version %s\n", strings.TrimSpace(avyna.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
