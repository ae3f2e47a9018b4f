package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ParthJhaveri10/Lumeo/catalog"
	"github.com/ParthJhaveri10/Lumeo/config"
)

var (
	searchPage  int
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog for songs",
	Long:  `Search the upstream catalog for songs and print titles, artists and the best available stream URL.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		client := catalog.FromAppConfig(cfg, nil)

		query := strings.Join(args, " ")
		page, err := client.SearchSongs(context.Background(), query, searchPage, searchLimit)
		if err != nil {
			log.Fatalf("search failed: %v", catalog.UserMessage(err))
		}

		if len(page.Results) == 0 {
			fmt.Println("No songs found.")
			return
		}

		fmt.Printf("Found %d songs (showing %d):\n\n", page.Total, len(page.Results))
		for i, track := range page.Results {
			artists := strings.Join(track.PrimaryArtistNames(), ", ")
			fmt.Printf("%d. %s - %s\n", i+1, track.Name, artists)
			if url := track.BestDownloadURL(); url != "" {
				fmt.Printf("   %s\n", url)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 0, "result page")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "number of results")
}
