package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tierdeck/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "tierdeck.db"

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.tierdeck/data/tierdeck.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tierdeck", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// BookingStore returns a BookingStore interface backed by this store.
func (s *Store) BookingStore() driven.BookingStore {
	return &bookingStore{store: s}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Catalog Store ====================

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// ReplaceCatalog replaces services, tiers and feature names in one transaction.
func (s *catalogStore) ReplaceCatalog(ctx context.Context, catalog *domain.Catalog) error {
	if catalog == nil {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{"DELETE FROM tiers", "DELETE FROM services", "DELETE FROM feature_names"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
	}

	for i, svc := range catalog.Services {
		if err := insertService(ctx, tx, i, svc); err != nil {
			return err
		}
	}

	for key, name := range catalog.FeatureNames {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO feature_names (key, display_name) VALUES (?, ?)", key, name); err != nil {
			return fmt.Errorf("saving feature name %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertService(ctx context.Context, tx *sql.Tx, position int, svc domain.Service) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO services (id, position, name, description, category)
		VALUES (?, ?, ?, ?, ?)
	`, svc.ID, position, svc.Name, svc.Description, svc.Category)
	if err != nil {
		return fmt.Errorf("saving service %s: %w", svc.ID, err)
	}

	for j, tier := range svc.Tiers {
		features := tier.Features
		if features == nil {
			features = []string{}
		}
		featuresJSON, err := json.Marshal(features)
		if err != nil {
			return fmt.Errorf("marshalling features: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO tiers (service_id, id, position, name, price, original_price, description, features, popular)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, svc.ID, tier.ID, j, tier.Name, tier.Price, tier.OriginalPrice,
			tier.Description, string(featuresJSON), tier.Popular)
		if err != nil {
			return fmt.Errorf("saving tier %s/%s: %w", svc.ID, tier.ID, err)
		}
	}
	return nil
}

// ListServices returns all services with their tiers in display order.
func (s *catalogStore) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, description, category FROM services ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service //nolint:prealloc // size unknown from query
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Category); err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating services: %w", err)
	}

	for i := range services {
		tiers, err := s.tiers(ctx, services[i].ID)
		if err != nil {
			return nil, err
		}
		services[i].Tiers = tiers
	}

	return services, nil
}

// GetService retrieves a service by ID.
func (s *catalogStore) GetService(ctx context.Context, id string) (*domain.Service, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, category FROM services WHERE id = ?
	`, id)

	var svc domain.Service
	if err := row.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning service: %w", err)
	}

	tiers, err := s.tiers(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Tiers = tiers
	return &svc, nil
}

// FeatureNames returns the feature display name map.
func (s *catalogStore) FeatureNames(ctx context.Context) (domain.FeatureNames, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT key, display_name FROM feature_names")
	if err != nil {
		return nil, fmt.Errorf("querying feature names: %w", err)
	}
	defer rows.Close()

	names := make(domain.FeatureNames)
	for rows.Next() {
		var key, name string
		if err := rows.Scan(&key, &name); err != nil {
			return nil, fmt.Errorf("scanning feature name: %w", err)
		}
		names[key] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feature names: %w", err)
	}
	return names, nil
}

func (s *catalogStore) tiers(ctx context.Context, serviceID string) ([]domain.Tier, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, price, original_price, description, features, popular
		FROM tiers WHERE service_id = ? ORDER BY position
	`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("querying tiers: %w", err)
	}
	defer rows.Close()

	tiers := []domain.Tier{}
	for rows.Next() {
		var tier domain.Tier
		var featuresJSON string
		if err := rows.Scan(&tier.ID, &tier.Name, &tier.Price, &tier.OriginalPrice,
			&tier.Description, &featuresJSON, &tier.Popular); err != nil {
			return nil, fmt.Errorf("scanning tier: %w", err)
		}
		if err := json.Unmarshal([]byte(featuresJSON), &tier.Features); err != nil {
			return nil, fmt.Errorf("unmarshaling features: %w", err)
		}
		tiers = append(tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tiers: %w", err)
	}
	return tiers, nil
}

// ==================== Booking Store ====================

// bookingStore implements driven.BookingStore.
type bookingStore struct {
	store *Store
}

var _ driven.BookingStore = (*bookingStore)(nil)

// Save stores a booking choice.
func (s *bookingStore) Save(ctx context.Context, choice domain.BookingChoice) error {
	if choice.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO bookings (id, service_id, tier_id, tier_index, selected_at)
		VALUES (?, ?, ?, ?, ?)
	`, choice.ID, choice.ServiceID, choice.TierID, choice.TierIndex, choice.SelectedAt.UnixNano())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("saving booking: %w", err)
	}
	return nil
}

// Latest returns the most recent choice for a service.
func (s *bookingStore) Latest(ctx context.Context, serviceID string) (*domain.BookingChoice, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, service_id, tier_id, tier_index, selected_at
		FROM bookings WHERE service_id = ?
		ORDER BY selected_at DESC, seq DESC LIMIT 1
	`, serviceID)

	choice, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return choice, nil
}

// List returns all choices, newest first.
func (s *bookingStore) List(ctx context.Context) ([]domain.BookingChoice, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, service_id, tier_id, tier_index, selected_at
		FROM bookings ORDER BY selected_at DESC, seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	var choices []domain.BookingChoice //nolint:prealloc // size unknown from query
	for rows.Next() {
		choice, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		choices = append(choices, *choice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	return choices, nil
}

// Clear removes all choices.
func (s *bookingStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM bookings"); err != nil {
		return fmt.Errorf("clearing bookings: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.BookingChoice, error) {
	var choice domain.BookingChoice
	var selectedAt int64
	if err := row.Scan(&choice.ID, &choice.ServiceID, &choice.TierID, &choice.TierIndex, &selectedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning booking: %w", err)
	}
	choice.SelectedAt = time.Unix(0, selectedAt).UTC()
	return &choice, nil
}
