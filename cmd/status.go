package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Catalog Status\n")
		fmt.Printf("==============\n")
		fmt.Printf("Temples: %d\n", s.TempleCount())
		fmt.Printf("Reviews: %d\n", s.ReviewCount())
		fmt.Printf("Events:  %d\n", s.EventCount())
		fmt.Printf("Users:   %d\n", s.UserCount())

		byCat := s.TempleCountByCategory()
		if len(byCat) > 0 {
			fmt.Printf("\nPer-Category Breakdown\n")
			fmt.Printf("----------------------\n")

			var cats []string
			for c := range byCat {
				cats = append(cats, c)
			}
			sort.Strings(cats)

			for _, c := range cats {
				fmt.Printf("  %-10s %4d\n", c, byCat[c])
			}
		}

		if verbose {
			byCity := s.TempleCountByCity()
			if len(byCity) > 0 {
				fmt.Printf("\nPer-City Breakdown\n")
				fmt.Printf("------------------\n")

				var cities []string
				for c := range byCity {
					cities = append(cities, c)
				}
				sort.Strings(cities)

				for _, c := range cities {
					fmt.Printf("  %-24s %4d\n", c, byCity[c])
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
