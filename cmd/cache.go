package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ParthJhaveri10/Lumeo/cache"
	"github.com/ParthJhaveri10/Lumeo/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Verify the Redis response cache connection",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := cache.ConnectRedis(cfg); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer cache.CloseRedis()

		if err := cache.VerifyRedis(); err != nil {
			log.Fatalf("Redis verification failed: %v", err)
		}

		fmt.Printf("Redis at %s:%s is working.\n", cfg.RedisHost, cfg.RedisPort)
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
