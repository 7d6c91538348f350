package model

import "github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"

// Category classifies a temple by tradition. The set is closed; labels
// outside it are rejected at the request boundary.
type Category string

const (
	CategoryHindu    Category = "hindu"
	CategoryJain     Category = "jain"
	CategoryBuddhist Category = "buddhist"
	CategorySikh     Category = "sikh"
	CategoryOther    Category = "other"
)

// Categories lists every valid category label.
var Categories = []Category{
	CategoryHindu,
	CategoryJain,
	CategoryBuddhist,
	CategorySikh,
	CategoryOther,
}

// ParseCategory validates a category label.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Temple is a single catalog entry. Location is nil when the source data
// carries no usable coordinates; such entries never appear in ranked results.
type Temple struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category Category        `json:"category"`
	Deity    string          `json:"deity,omitempty"`
	Address  string          `json:"address,omitempty"`
	City     string          `json:"city"`
	Timings  string          `json:"timings,omitempty"`
	About    string          `json:"about,omitempty"`
	Location *geo.Coordinate `json:"location,omitempty"`
}

// TempleDetail is a temple plus its review summary.
type TempleDetail struct {
	Temple
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// Review is a user-submitted rating with optional comment.
type Review struct {
	ID        string `json:"id"`
	TempleID  int64  `json:"temple_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Event is a festival or ceremony hosted at a temple.
type Event struct {
	ID       string `json:"id"`
	TempleID int64  `json:"temple_id"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	StartsAt string `json:"starts_at"`
}

// User is a registered account. The password hash never serializes.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"-"`
	CreatedAt    string `json:"created_at"`
}
