package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/assistant"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/auth"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/search"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the temple directory API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		searcher := &search.Searcher{
			Catalog:         s,
			DefaultRadiusKm: cfg.Search.DefaultRadiusKm,
		}

		secret := os.Getenv("TEMPLE_FINDER_TOKEN_SECRET")
		if secret == "" {
			// Tokens won't survive a restart, which is fine for local use.
			secret = uuid.NewString()
			fmt.Fprintln(os.Stderr, "TEMPLE_FINDER_TOKEN_SECRET not set; using an ephemeral signing secret")
		}

		authSvc := &auth.Service{
			Users: s,
			Tokens: &auth.TokenFactory{
				Secret:   []byte(secret),
				Issuer:   "temple-finder",
				Validity: time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
			},
		}

		var asst *assistant.Assistant
		client, err := assistant.NewClient(cfg.Assistant.Model, cfg.Assistant.MaxTokens)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Chat assistant disabled: %v\n", err)
		} else {
			asst = assistant.New(client, searcher, cfg.Assistant.RateLimit)
		}

		srv := &web.Server{
			Store:     s,
			Searcher:  searcher,
			Auth:      authSvc,
			Assistant: asst,
			Addr:      fmt.Sprintf("%s:%d", serveHost, servePort),
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
