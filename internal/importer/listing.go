// Package importer scrapes temple listing pages into the catalog.
package importer

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
)

// FetchListing fetches a listing page and parses its temple cards.
func FetchListing(ctx context.Context, url string, rl *RateLimiter) ([]model.Temple, error) {
	if rl != nil {
		if err := rl.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("listing returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	return ParseListing(doc)
}

// ParseListing extracts temples from a goquery document of a listing page.
// Cards without a name are dropped; cards without usable coordinates keep a
// nil location; unknown category labels fall back to "other".
func ParseListing(doc *goquery.Document) ([]model.Temple, error) {
	var temples []model.Temple

	doc.Find(".temple-card").Each(func(_ int, card *goquery.Selection) {
		t := model.Temple{
			Name:    strings.TrimSpace(card.Find(".temple-name").Text()),
			City:    strings.TrimSpace(card.Find(".temple-city").Text()),
			Address: strings.TrimSpace(card.Find(".temple-address").Text()),
			Deity:   strings.TrimSpace(card.Find(".temple-deity").Text()),
			Timings: strings.TrimSpace(card.Find(".temple-timings").Text()),
			About:   strings.TrimSpace(card.Find(".temple-about").Text()),
		}

		catLabel, _ := card.Attr("data-category")
		if cat, ok := model.ParseCategory(strings.ToLower(strings.TrimSpace(catLabel))); ok {
			t.Category = cat
		} else {
			t.Category = model.CategoryOther
		}

		t.Location = parseLocation(card)

		if t.Name != "" {
			temples = append(temples, t)
		}
	})

	if len(temples) == 0 {
		return nil, fmt.Errorf("no temples found in listing")
	}

	return temples, nil
}

func parseLocation(card *goquery.Selection) *geo.Coordinate {
	latStr, hasLat := card.Attr("data-lat")
	lngStr, hasLng := card.Attr("data-lng")
	if !hasLat || !hasLng {
		return nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return nil
	}

	c := geo.Coordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return nil
	}
	return &c
}
