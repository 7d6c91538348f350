package importer

import (
	"strings"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
)

// Merge folds freshly scraped temples into the existing catalog. Entries
// are keyed by normalized name + city; existing entries keep their place
// (and relative order), scraped duplicates enrich them, and genuinely new
// temples append in scrape order.
func Merge(existing, scraped []model.Temple) []model.Temple {
	merged := make([]model.Temple, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, t := range merged {
		index[mergeKey(t)] = i
	}

	for _, s := range scraped {
		i, ok := index[mergeKey(s)]
		if !ok {
			index[mergeKey(s)] = len(merged)
			merged = append(merged, s)
			continue
		}

		// Enrich in place: longer descriptions win, gaps get filled,
		// a scraped location fills a missing one but never overwrites.
		t := &merged[i]
		if len(s.About) > len(t.About) {
			t.About = s.About
		}
		if t.Address == "" {
			t.Address = s.Address
		}
		if t.Deity == "" {
			t.Deity = s.Deity
		}
		if t.Timings == "" {
			t.Timings = s.Timings
		}
		if t.Location == nil {
			t.Location = s.Location
		}
	}

	return merged
}

func mergeKey(t model.Temple) string {
	return normalizeName(t.Name) + "|" + normalizeName(t.City)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
