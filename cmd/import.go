package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/importer"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
)

var importURLs []string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Scrape temple listing pages into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(importURLs) == 0 {
			return fmt.Errorf("at least one --url is required")
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		existing, err := s.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		rl := importer.NewRateLimiter(cfg.Import.RateLimit)
		merged := existing

		for i, url := range importURLs {
			fmt.Printf("  [%d/%d] %s...", i+1, len(importURLs), url)

			scraped, err := importer.FetchListing(ctx, url, rl)
			if err != nil {
				fmt.Fprintf(os.Stderr, " ERROR: %v\n", err)
				continue
			}

			before := len(merged)
			merged = importer.Merge(merged, scraped)
			fmt.Printf(" %d temples (%d new)\n", len(scraped), len(merged)-before)
		}

		if err := s.ReplaceTemples(merged); err != nil {
			return fmt.Errorf("saving catalog: %w", err)
		}

		fmt.Printf("Done. Catalog now holds %d temples.\n", len(merged))
		return nil
	},
}

func init() {
	importCmd.Flags().StringArrayVar(&importURLs, "url", nil, "Listing page URL (repeatable)")
	rootCmd.AddCommand(importCmd)
}
