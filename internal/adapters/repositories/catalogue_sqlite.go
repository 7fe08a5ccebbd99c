package repositories

import (
	"context"
	"database/sql"
	"dvpr-route-scheduler/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SqliteCatalogueRepository resolves supplier/rider ids against a
// local SQLite database, for local runs and demos.
type SqliteCatalogueRepository struct {
	DB *sql.DB
}

func NewSqliteCatalogueRepository(db *sql.DB) *SqliteCatalogueRepository {
	return &SqliteCatalogueRepository{DB: db}
}

func (r *SqliteCatalogueRepository) GetSuppliers(ctx context.Context, ids []int) ([]ports.SupplierRecord, error) {
	if r.DB == nil {
		return nil, errors.New("catalogue repository: db is nil")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}

	q := fmt.Sprintf(`
	SELECT supplier_id, address, items
	FROM suppliers
	WHERE supplier_id IN (%s);
	`, strings.Join(ph, ","))

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get suppliers: query suppliers table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.SupplierRecord, 0, len(ids))
	for rows.Next() {
		var rec ports.SupplierRecord
		var itemsJSON string
		if err := rows.Scan(&rec.ID, &rec.Address, &itemsJSON); err != nil {
			return nil, fmt.Errorf("get suppliers: scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &rec.Items); err != nil {
			return nil, fmt.Errorf("get suppliers: supplier %d: unmarshal items: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get suppliers: row iteration: %w", err)
	}

	return out, nil
}

func (r *SqliteCatalogueRepository) GetRiders(ctx context.Context, ids []int) ([]ports.RiderRecord, error) {
	if r.DB == nil {
		return nil, errors.New("catalogue repository: db is nil")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}

	q := fmt.Sprintf(`
	SELECT rider_id, external_id, address
	FROM riders
	WHERE rider_id IN (%s);
	`, strings.Join(ph, ","))

	rows, err := r.DB.QueryContext(ctx, q, args...)
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
