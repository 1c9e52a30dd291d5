package main

import (
	"context" // Context for database calls
	"fmt"     // Output
	"os"      // Exit codes and files
	"time"    // Command timeout

	"bike_market/internal/config" // Configuration
	"bike_market/internal/db"     // Indexes and seeding
	"bike_market/internal/store"  // Catalog repository

	"github.com/sirupsen/logrus" // Logging
	"github.com/spf13/cobra"     // CLI
)

// Main entry point for migration
func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the bike market database",
	}
	rootCmd.AddCommand(indexesCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect opens the configured database for one command run
func connect(timeout time.Duration) (context.Context, context.CancelFunc, *db.Mongo, error) {
	cfg := config.LoadConfig() // Load configuration
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	mongo, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return ctx, cancel, mongo, nil
}

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the collection indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel, mongo, err := connect(time.Minute)
			if err != nil {
				return err
			}
			defer cancel()
			defer mongo.Close(context.Background())
			return db.Migrate(ctx, mongo.Database)
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories and blogs from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			data, err := db.ParseSeed(f)
			if err != nil {
				return err
			}

			ctx, cancel, mongo, err := connect(time.Minute)
			if err != nil {
				return err
			}
			defer cancel()
			defer mongo.Close(context.Background())

			inserted, err := db.Seed(ctx, store.NewCatalogRepository(mongo.Database), data)
			if err != nil {
				return err
			}
			logrus.WithField("inserted", inserted).Info("Seeding done")
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "seed.yaml", "Seed file")
	return cmd
}
