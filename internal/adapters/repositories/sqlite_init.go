package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the catalogue and cache tables on a fresh SQLite
// database. Safe to call repeatedly.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSuppliersQuery := `
	CREATE TABLE IF NOT EXISTS suppliers (
		supplier_id INTEGER PRIMARY KEY,
		address TEXT NOT NULL,
		items TEXT NOT NULL
	);
	`

	createRidersQuery := `
	CREATE TABLE IF NOT EXISTS riders (
		rider_id INTEGER PRIMARY KEY,
		external_id INTEGER NOT NULL,
		address TEXT NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
    ON distance_cache(destination, origin);
	`

	statements := []string{
		createSuppliersQuery,
		createRidersQuery,
		createDistanceCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
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

// SupplierSeed is the on-disk seed format for a single supplier row.
type SupplierSeed struct {
	SupplierID int                `json:"supplier_id"`
	Address    string             `json:"address"`
	Items      map[string]float64 `json:"items"`
}

// RiderSeed is the on-disk seed format for a single rider row.
type RiderSeed struct {
	RiderID    int    `json:"rider_id"`
	ExternalID int    `json:"external_id"`
	Address    string `json:"address"`
}

// CatalogueSeed is the top-level shape of a seed JSON file.
type CatalogueSeed struct {
	Suppliers []SupplierSeed `json:"suppliers"`
	Riders    []RiderSeed    `json:"riders"`
}

// SeedFromJSON populates the catalogue tables from a JSON seed file,
// for local/demo runs.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
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

	supplierStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO suppliers (supplier_id, address, items)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalogue: prepare supplier insert: %w", err)
	}
	defer supplierStmt.Close()

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

		if _, err := supplierStmt.Exec(s.SupplierID, s.Address, string(itemsJSON)); err != nil {
			return fmt.Errorf("seed catalogue: insert supplier %d: %w", s.SupplierID, err)
		}
	}

	riderStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO riders (rider_id, external_id, address)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalogue: prepare rider insert: %w", err)
	}
	defer riderStmt.Close()

	for i, r := range seed.Riders {
		if r.RiderID <= 0 {
			return fmt.Errorf("seed catalogue: invalid rider_id at index %d: %d", i, r.RiderID)
		}
		if strings.TrimSpace(r.Address) == "" {
			return fmt.Errorf("seed catalogue: rider %d: address cannot be empty", r.RiderID)
		}

		if _, err := riderStmt.Exec(r.RiderID, r.ExternalID, r.Address); err != nil {
			return fmt.Errorf("seed catalogue: insert rider %d: %w", r.RiderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalogue: commit tx: %w", err)
	}

	return nil
}
