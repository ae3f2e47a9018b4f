package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ParthJhaveri10/Lumeo/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Lumeo HTTP server",
	Long:  `Start the HTTP server exposing the catalog endpoints and the passthrough proxy to the upstream catalog API.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
