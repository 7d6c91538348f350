package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
)

// Store manages all data persistence via DuckDB.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "temple-finder.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	seqs := []string{
		"CREATE SEQUENCE IF NOT EXISTS temples_seq",
	}
	for _, seq := range seqs {
		if _, err := s.DB.Exec(seq); err != nil {
			return fmt.Errorf("creating sequence: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS temples (
			id INTEGER PRIMARY KEY DEFAULT nextval('temples_seq'),
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			deity TEXT,
			address TEXT,
			city TEXT NOT NULL,
			timings TEXT,
			about TEXT,
			lat DOUBLE,
			lng DOUBLE
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			temple_id INTEGER NOT NULL,
			user_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			temple_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			detail TEXT,
			starts_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT,
			password_hash BLOB NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// InsertTemple stores a new temple and fills in its assigned ID.
func (s *Store) InsertTemple(t *model.Temple) error {
	var lat, lng any
	if t.Location != nil {
		lat, lng = t.Location.Lat, t.Location.Lng
	}

	err := s.DB.QueryRow(`INSERT INTO temples (name, category, deity, address, city, timings, about, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		t.Name, string(t.Category), t.Deity, t.Address, t.City, t.Timings, t.About, lat, lng).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("inserting temple %q: %w", t.Name, err)
	}
	return nil
}

// ReplaceTemples swaps the whole catalog in one transaction. Used by the
// importer after merging scraped pages with the existing catalog.
func (s *Store) ReplaceTemples(temples []model.Temple) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM temples"); err != nil {
		return err
	}

	// Entries that already have an id keep it, so reviews and events
	// pointing at them survive the replace. Only genuinely new entries
	// draw from the sequence.
	stmt, err := tx.Prepare(`INSERT INTO temples (id, name, category, deity, address, city, timings, about, lat, lng)
		VALUES (COALESCE(?, nextval('temples_seq')), ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range temples {
		var id any
		if t.ID != 0 {
			id = t.ID
		}
		var lat, lng any
		if t.Location != nil {
			lat, lng = t.Location.Lat, t.Location.Lng
		}
		if _, err := stmt.Exec(id, t.Name, string(t.Category), t.Deity, t.Address, t.City, t.Timings, t.About, lat, lng); err != nil {
			return fmt.Errorf("inserting temple %q: %w", t.Name, err)
		}
	}

	return tx.Commit()
}

// Snapshot loads the full catalog in insertion order. Satisfies the
// search.CatalogProvider capability.
func (s *Store) Snapshot(ctx context.Context) ([]model.Temple, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, name, category, deity, address, city, timings, about, lat, lng FROM temples ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var temples []model.Temple
	for rows.Next() {
		t, err := scanTemple(rows)
		if err != nil {
			return nil, err
		}
		temples = append(temples, t)
	}
	return temples, rows.Err()
}

// TempleByID loads one temple with its review summary. Returns
// sql.ErrNoRows when the id is unknown.
func (s *Store) TempleByID(id int64) (*model.TempleDetail, error) {
	row := s.DB.QueryRow(
		"SELECT id, name, category, deity, address, city, timings, about, lat, lng FROM temples WHERE id = ?", id)
	t, err := scanTemple(row)
	if err != nil {
		return nil, err
	}

	detail := &model.TempleDetail{Temple: t}
	var avg sql.NullFloat64
	err = s.DB.QueryRow("SELECT AVG(rating), COUNT(*) FROM reviews WHERE temple_id = ?", id).
		Scan(&avg, &detail.ReviewCount)
	if err != nil {
		return nil, fmt.Errorf("loading review summary: %w", err)
	}
	if avg.Valid {
		detail.AverageRating = avg.Float64
	}

	return detail, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemple(row rowScanner) (model.Temple, error) {
	var t model.Temple
	var category string
	var deity, address, timings, about sql.NullString
	var lat, lng sql.NullFloat64

	if err := row.Scan(&t.ID, &t.Name, &category, &deity, &address, &t.City, &timings, &about, &lat, &lng); err != nil {
		return t, err
	}

	t.Category = model.Category(category)
	t.Deity = deity.String
	t.Address = address.String
	t.Timings = timings.String
	t.About = about.String
	if lat.Valid && lng.Valid {
		t.Location = &geo.Coordinate{Lat: lat.Float64, Lng: lng.Float64}
	}
	return t, nil
}

// AddReview stores a review.
func (s *Store) AddReview(r *model.Review) error {
	_, err := s.DB.Exec("INSERT INTO reviews (id, temple_id, user_id, rating, comment, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.TempleID, r.UserID, r.Rating, r.Comment, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}
	return nil
}

// ReviewsForTemple loads a temple's reviews, newest first.
func (s *Store) ReviewsForTemple(templeID int64) ([]model.Review, error) {
	rows, err := s.DB.Query(
		"SELECT id, temple_id, user_id, rating, comment, created_at FROM reviews WHERE temple_id = ? ORDER BY created_at DESC", templeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var r model.Review
		var comment sql.NullString
		if err := rows.Scan(&r.ID, &r.TempleID, &r.UserID, &r.Rating, &comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Comment = comment.String
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// AddEvent stores an event.
func (s *Store) AddEvent(e *model.Event) error {
	_, err := s.DB.Exec("INSERT INTO events (id, temple_id, title, detail, starts_at) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.TempleID, e.Title, e.Detail, e.StartsAt)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// EventsForTemple loads a temple's events starting at or after the given
// RFC 3339 instant, soonest first.
func (s *Store) EventsForTemple(templeID int64, from string) ([]model.Event, error) {
	rows, err := s.DB.Query(
		"SELECT id, temple_id, title, detail, starts_at FROM events WHERE temple_id = ? AND starts_at >= ? ORDER BY starts_at", templeID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.TempleID, &e.Title, &detail, &e.StartsAt); err != nil {
			return nil, err
		}
		e.Detail = detail.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// CreateUser stores a new account. Fails on duplicate email.
func (s *Store) CreateUser(u *model.User) error {
	_, err := s.DB.Exec("INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user %s: %w", u.Email, err)
	}
	return nil
}

// UserByEmail loads an account. Returns sql.ErrNoRows when unknown.
func (s *Store) UserByEmail(email string) (*model.User, error) {
	var u model.User
	var name sql.NullString
	err := s.DB.QueryRow("SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?", email).
		Scan(&u.ID, &u.Email, &name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Name = name.String
	return &u, nil
}

// TempleCount returns the catalog size.
func (s *Store) TempleCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM temples").Scan(&n)
	return n
}

// ReviewCount returns the total number of reviews.
func (s *Store) ReviewCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM reviews").Scan(&n)
	return n
}

// EventCount returns the total number of events.
func (s *Store) EventCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM events").Scan(&n)
	return n
}

// UserCount returns the number of registered accounts.
func (s *Store) UserCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	return n
}

// TempleCountByCategory returns catalog counts per category.
func (s *Store) TempleCountByCategory() map[string]int {
	m := make(map[string]int)
	rows, err := s.DB.Query("SELECT category, COUNT(*) FROM temples GROUP BY category ORDER BY category")
	if err != nil {
		return m
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var cnt int
		rows.Scan(&cat, &cnt)
		m[cat] = cnt
	}
	return m
}

// TempleCountByCity returns catalog counts per city.
func (s *Store) TempleCountByCity() map[string]int {
	m := make(map[string]int)
	rows, err := s.DB.Query("SELECT city, COUNT(*) FROM temples GROUP BY city ORDER BY city")
	if err != nil {
		return m
	}
	defer rows.Close()
	for rows.Next() {
		var city string
		var cnt int
		rows.Scan(&city, &cnt)
		m[city] = cnt
	}
	return m
}
