package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/crossvet/crossvet/internal/models"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports only one concurrent writer. A single connection
	// serializes all access through Go's pool and avoids "database is
	// locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// newULID generates a new ULID string.
func newULID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}

// Migrate runs all embedded SQL migration files in order.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var count int
		err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE filename = ?", name).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		data, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (filename) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Reviews ---

func (s *SQLiteStore) CreateReview(ctx context.Context, r *models.ReviewRecord) error {
	if r.ID == "" {
		r.ID = newULID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	issues, err := json.Marshal(r.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	metrics, err := json.Marshal(r.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	triggers, err := json.Marshal(r.BiasTriggers)
	if err != nil {
		return fmt.Errorf("marshal bias triggers: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, generation_model, review_model, strategy, review_type, language, summary, issues, metrics, alternative, bias_triggers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GenerationModel, r.ReviewModel, string(r.Strategy), string(r.ReviewType),
		r.Language, r.Summary, string(issues), string(metrics), r.Alternative, string(triggers), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetReview(ctx context.Context, id string) (*models.ReviewRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, generation_model, review_model, strategy, review_type, language, summary, issues, metrics, alternative, bias_triggers, created_at
		FROM reviews WHERE id = ?`, id)
	r, err := scanReview(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ListReviews(ctx context.Context, filter ReviewListFilter) ([]*models.ReviewRecord, error) {
	query := `SELECT id, generation_model, review_model, strategy, review_type, language, summary, issues, metrics, alternative, bias_triggers, created_at
		FROM reviews WHERE 1=1`
	var args []any
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, string(filter.Strategy))
	}
	if filter.GenerationModel != "" {
		query += " AND generation_model = ?"
		args = append(args, filter.GenerationModel)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []*models.ReviewRecord
	for rows.Next() {
		r, err := scanReview(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *SQLiteStore) DeleteReview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("review not found: %s", id)
	}
	return nil
}

func scanReview(scan func(dest ...any) error) (*models.ReviewRecord, error) {
	r := &models.ReviewRecord{}
	var strategy, reviewType, issues, metrics, triggers string
	err := scan(&r.ID, &r.GenerationModel, &r.ReviewModel, &strategy, &reviewType,
		&r.Language, &r.Summary, &issues, &metrics, &r.Alternative, &triggers, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.Strategy = models.Strategy(strategy)
	r.ReviewType = models.ReviewType(reviewType)
	if err := json.Unmarshal([]byte(issues), &r.Issues); err != nil {
		return nil, fmt.Errorf("unmarshal issues: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &r.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	if err := json.Unmarshal([]byte(triggers), &r.BiasTriggers); err != nil {
		return nil, fmt.Errorf("unmarshal bias triggers: %w", err)
	}
	return r, nil
}
