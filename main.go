package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/cmd"
)

func main() {
	// .env is optional; deployments may set ANTHROPIC_API_KEY and
	// TEMPLE_FINDER_TOKEN_SECRET in the environment directly.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
