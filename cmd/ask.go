package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/assistant"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/search"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
)

var (
	askLat float64
	askLng float64
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question about the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		searcher := &search.Searcher{
			Catalog:         s,
			DefaultRadiusKm: cfg.Search.DefaultRadiusKm,
		}

		client, err := assistant.NewClient(cfg.Assistant.Model, cfg.Assistant.MaxTokens)
		if err != nil {
			return err
		}
		asst := assistant.New(client, searcher, cfg.Assistant.RateLimit)

		var origin *geo.Coordinate
		if cmd.Flags().Changed("lat") != cmd.Flags().Changed("lng") {
			return fmt.Errorf("--lat and --lng must be supplied together")
		}
		if cmd.Flags().Changed("lat") {
			origin = &geo.Coordinate{Lat: askLat, Lng: askLng}
			if err := origin.Validate(); err != nil {
				return err
			}
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		reply, usage, err := asst.Ask(ctx, question, origin)
		if err != nil {
			return err
		}

		fmt.Println(reply.Answer)
		if len(reply.Suggestions) > 0 {
			fmt.Printf("\nSuggested temples: %v\n", reply.Suggestions)
		}
		if verbose {
			fmt.Printf("(%d+%d tokens)\n", usage.InputTokens, usage.OutputTokens)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().Float64Var(&askLat, "lat", 0, "Your latitude, for nearby recommendations")
	askCmd.Flags().Float64Var(&askLng, "lng", 0, "Your longitude, for nearby recommendations")
	rootCmd.AddCommand(askCmd)
}
