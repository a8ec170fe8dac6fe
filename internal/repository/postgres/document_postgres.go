package postgres

import (
	"context"
	"database/sql"
	"errors"

	"propertyapi/internal/repository/document"
)

// DefaultDocumentName is the row holding the listing collection.
const DefaultDocumentName = "properties"

// DocumentPostgres keeps the listing document as a single JSONB row.
// It is a drop-in document.Backend: the store above it still reads and writes the
// whole collection, only the medium changes.
type DocumentPostgres struct {
	db   *sql.DB
	name string
}

// NewDocumentPostgres creates a backend for the document called name.
func NewDocumentPostgres(db *sql.DB, name string) *DocumentPostgres {
	if name == "" {
		name = DefaultDocumentName
	}
	return &DocumentPostgres{db: db, name: name}
}

var _ document.Backend = (*DocumentPostgres)(nil)

// Load returns the stored document or document.ErrNotExist when the row is absent.
func (r *DocumentPostgres) Load(ctx context.Context) ([]byte, error) {
	const q = `SELECT body FROM listing_documents WHERE name = $1`
	var body []byte
	if err := r.db.QueryRowContext(ctx, q, r.name).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotExist
		}
		return nil, err
	}
	return body, nil
}

// Save upserts the whole document.
func (r *DocumentPostgres) Save(ctx context.Context, data []byte) error {
	const q = `
		INSERT INTO listing_documents (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, q, r.name, data)
	return err
}
