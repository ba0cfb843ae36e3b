package repo

import (
	"context"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGProductArchive writes completed products to Postgres. The in-memory
// store stays the source of truth for reads; this is a write-through so
// completed products survive in the database for inspection.
type PGProductArchive struct {
	db *pgxpool.Pool
}

// NewPGProductArchive returns a new PGProductArchive.
func NewPGProductArchive(db *pgxpool.Pool) *PGProductArchive {
	return &PGProductArchive{db: db}
}

// Insert stores a completed product. Re-inserting the same id is a no-op,
// so a repeated finalize never duplicates a row.
func (a *PGProductArchive) Insert(ctx context.Context, p dom.Product) error {
	_, err := a.db.Exec(ctx, `
		INSERT INTO products (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`,
		p.ID, p.Name, p.CreatedAt,
	)
	return err
}

// ListCompleted returns archived products in archive order.
func (a *PGProductArchive) ListCompleted(ctx context.Context) ([]dom.Product, error) {
	rows, err := a.db.Query(ctx,
		`SELECT id, name, created_at FROM products ORDER BY archived_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dom.Product
	for rows.Next() {
		var p dom.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
