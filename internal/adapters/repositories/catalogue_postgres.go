package repositories

import (
	"context"
	"database/sql"
	"dvpr-route-scheduler/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// PostgresCatalogueRepository resolves supplier/rider ids against the
// production Postgres catalogue, via pgx's database/sql driver.
type PostgresCatalogueRepository struct {
	DB *sql.DB
}

func NewPostgresCatalogueRepository(db *sql.DB) *PostgresCatalogueRepository {
	return &PostgresCatalogueRepository{DB: db}
}

func (r *PostgresCatalogueRepository) GetSuppliers(ctx context.Context, ids []int) ([]ports.SupplierRecord, error) {
	if r.DB == nil {
		return nil, errors.New("catalogue repository: db is nil")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	q := `
	SELECT supplier_id, address, items
	FROM suppliers
	WHERE supplier_id = ANY($1::int[]);
	`

	rows, err := r.DB.QueryContext(ctx, q, toPgIntArray(ids))
	if err != nil {
		return nil, fmt.Errorf("get suppliers: query suppliers table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.SupplierRecord, 0, len(ids))
	for rows.Next() {
		var rec ports.SupplierRecord
		var itemsJSON []byte
		if err := rows.Scan(&rec.ID, &rec.Address, &itemsJSON); err != nil {
			return nil, fmt.Errorf("get suppliers: scan row: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &rec.Items); err != nil {
			return nil, fmt.Errorf("get suppliers: supplier %d: unmarshal items: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get suppliers: row iteration: %w", err)
	}

	return out, nil
}

func (r *PostgresCatalogueRepository) GetRiders(ctx context.Context, ids []int) ([]ports.RiderRecord, error) {
	if r.DB == nil {
		return nil, errors.New("catalogue repository: db is nil")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	q := `
	SELECT rider_id, external_id, address
	FROM riders
	WHERE rider_id = ANY($1::int[]);
	`

	rows, err := r.DB.QueryContext(ctx, q, toPgIntArray(ids))
	if err != nil {
		return nil, fmt.Errorf("get riders: query riders table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.RiderRecord, 0, len(ids))
	for rows.Next() {
		var rec ports.RiderRecord
		if err := rows.Scan(&rec.ID, &rec.ExternalID, &rec.Address); err != nil {
			return nil, fmt.Errorf("get riders: scan row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get riders: row iteration: %w", err)
	}

	return out, nil
}

// toPgIntArray renders ids as a Postgres array literal for ANY($1::int[]).
func toPgIntArray(ids []int) string {
	s := "{"
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", id)
	}
	return s + "}"
}

// InitPostgresSchema creates the catalogue and cache tables on a fresh
// Postgres database. Safe to call repeatedly.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS suppliers (
			supplier_id INTEGER PRIMARY KEY,
			address TEXT NOT NULL,
			items JSONB NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS riders (
			rider_id INTEGER PRIMARY KEY,
			external_id INTEGER NOT NULL,
			address TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS distance_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_meters INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			address TEXT PRIMARY KEY,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
		ON distance_cache(destination, origin);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedPostgresFromJSON populates the Postgres catalogue tables from a
// JSON seed file (same format as SeedFromJSON's sqlite counterpart).
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalogue: read %q: %w", jsonPath, err)
	}

	var seed CatalogueSeed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed catalogue: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalogue: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, s := range seed.Suppliers {
		if s.SupplierID <= 0 {
			return fmt.Errorf("seed catalogue: invalid supplier_id at index %d: %d", i, s.SupplierID)
		}
		if strings.TrimSpace(s.Address) == "" {
			return fmt.Errorf("seed catalogue: supplier %d: address cannot be empty", s.SupplierID)
		}

		itemsJSON, err := json.Marshal(s.Items)
		if err != nil {
			return fmt.Errorf("seed catalogue: supplier %d: marshal items: %w", s.SupplierID, err)
		}

		if _, err := tx.Exec(`
		INSERT INTO suppliers (supplier_id, address, items)
		VALUES ($1, $2, $3)
		ON CONFLICT (supplier_id) DO UPDATE
		SET address = EXCLUDED.address, items = EXCLUDED.items;
		`, s.SupplierID, s.Address, itemsJSON); err != nil {
			return fmt.Errorf("seed catalogue: insert supplier %d: %w", s.SupplierID, err)
		}
	}

	for i, r := range seed.Riders {
		if r.RiderID <= 0 {
			return fmt.Errorf("seed catalogue: invalid rider_id at index %d: %d", i, r.RiderID)
		}
		if strings.TrimSpace(r.Address) == "" {
			return fmt.Errorf("seed catalogue: rider %d: address cannot be empty", r.RiderID)
		}

		if _, err := tx.Exec(`
		INSERT INTO riders (rider_id, external_id, address)
		VALUES ($1, $2, $3)
		ON CONFLICT (rider_id) DO UPDATE
		SET external_id = EXCLUDED.external_id, address = EXCLUDED.address;
		`, r.RiderID, r.ExternalID, r.Address); err != nil {
			return fmt.Errorf("seed catalogue: insert rider %d: %w", r.RiderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalogue: commit tx: %w", err)
	}

	return nil
}
