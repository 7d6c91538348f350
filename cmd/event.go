package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
)

var (
	eventTempleID int64
	eventTitle    string
	eventDetail   string
	eventStartsAt string
)

var addEventCmd = &cobra.Command{
	Use:   "add-event",
	Short: "Record a festival or ceremony for a temple",
	RunE: func(cmd *cobra.Command, args []string) error {
		if eventTempleID == 0 || eventTitle == "" || eventStartsAt == "" {
			return fmt.Errorf("--temple, --title and --starts-at are required")
		}
		if _, err := time.Parse(time.RFC3339, eventStartsAt); err != nil {
			return fmt.Errorf("--starts-at must be RFC 3339 (e.g. 2026-02-15T06:00:00Z): %w", err)
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		if _, err := s.TempleByID(eventTempleID); err != nil {
			return fmt.Errorf("looking up temple %d: %w", eventTempleID, err)
		}

		e := &model.Event{
			ID:       uuid.NewString(),
			TempleID: eventTempleID,
			Title:    eventTitle,
			Detail:   eventDetail,
			StartsAt: eventStartsAt,
		}
		if err := s.AddEvent(e); err != nil {
			return err
		}

		fmt.Printf("Recorded %q for temple %d on %s\n", e.Title, e.TempleID, e.StartsAt)
		return nil
	},
}

func init() {
	addEventCmd.Flags().Int64Var(&eventTempleID, "temple", 0, "Temple id")
	addEventCmd.Flags().StringVar(&eventTitle, "title", "", "Event title")
	addEventCmd.Flags().StringVar(&eventDetail, "detail", "", "Event description")
	addEventCmd.Flags().StringVar(&eventStartsAt, "starts-at", "", "Start time (RFC 3339)")
	rootCmd.AddCommand(addEventCmd)
}
