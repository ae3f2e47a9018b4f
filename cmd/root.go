package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ParthJhaveri10/Lumeo/server"
)

var rootCmd = &cobra.Command{
	Use:   "lumeo",
	Short: "Lumeo is a music streaming gateway for an upstream catalog API.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
