package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/importer"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load temples from a JSON file into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("reading seed file: %w", err)
		}

		var temples []model.Temple
		if err := json.Unmarshal(body, &temples); err != nil {
			return fmt.Errorf("parsing seed file: %w", err)
		}

		for i, t := range temples {
			if t.Name == "" || t.City == "" {
				return fmt.Errorf("seed entry %d: name and city are required", i)
			}
			if _, ok := model.ParseCategory(string(t.Category)); !ok {
				return fmt.Errorf("seed entry %d (%s): unknown category %q", i, t.Name, t.Category)
			}
			if t.Location != nil && !t.Location.Valid() {
				return fmt.Errorf("seed entry %d (%s): invalid coordinates", i, t.Name)
			}
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

		merged := importer.Merge(existing, temples)
		if err := s.ReplaceTemples(merged); err != nil {
			return fmt.Errorf("saving catalog: %w", err)
		}

		fmt.Printf("Seeded %d temples (%d new). Catalog now holds %d.\n",
			len(temples), len(merged)-len(existing), len(merged))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "temples.json", "Path to seed JSON file")
	rootCmd.AddCommand(seedCmd)
}
