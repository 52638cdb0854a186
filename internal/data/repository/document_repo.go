package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DocumentRepository is a keyed JSON store: one row per (collection, id).
type DocumentRepository interface {
	List(ctx context.Context, collection string) ([]*entity.Document, error)
	Get(ctx context.Context, collection, id string) (*entity.Document, error)
	Create(ctx context.Context, doc *entity.Document) error
	// Merge applies a shallow JSON merge of patch and returns the new document,
	// or nil when the document does not exist.
	Merge(ctx context.Context, collection, id string, patch json.RawMessage) (*entity.Document, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
}

// ErrDocumentExists is returned by Create on a duplicate id.
var ErrDocumentExists = errors.New("document already exists")

type documentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDocumentRepository(db database.PgxIface, log *zap.Logger) DocumentRepository {
	return &documentRepository{
		db:  db,
		log: log.With(zap.String("repository", "document")),
	}
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var doc entity.Document
	var data []byte
	if err := row.Scan(&doc.Collection, &doc.ID, &data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.Data = json.RawMessage(data)
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, collection string) ([]*entity.Document, error) {
	query := `
		SELECT collection, id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, collection)
	if err != nil {
		r.log.Error("Failed to list documents",
			zap.Error(err),
			zap.String("collection", collection),
		)
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s document: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}

	return docs, nil
}

func (r *documentRepository) Get(ctx context.Context, collection, id string) (*entity.Document, error) {
	query := `
		SELECT collection, id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2
	`

	doc, err := scanDocument(r.db.QueryRow(ctx, query, collection, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to get document",
			zap.Error(err),
			zap.String("collection", collection),
			zap.String("id", id),
		)
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	return doc, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW(), NOW())
		ON CONFLICT (collection, id) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, doc.Collection, doc.ID, []byte(doc.Data)).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("create %s/%s: %w", doc.Collection, doc.ID, ErrDocumentExists)
	}
	if err != nil {
		r.log.Error("Failed to create document",
			zap.Error(err),
			zap.String("collection", doc.Collection),
			zap.String("id", doc.ID),
		)
		return fmt.Errorf("create %s/%s: %w", doc.Collection, doc.ID, err)
	}

	return nil
}

func (r *documentRepository) Merge(ctx context.Context, collection, id string, patch json.RawMessage) (*entity.Document, error) {
	query := `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
		RETURNING collection, id, data, created_at, updated_at
	`

	doc, err := scanDocument(r.db.QueryRow(ctx, query, collection, id, []byte(patch)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update document",
			zap.Error(err),
			zap.String("collection", collection),
			zap.String("id", id),
		)
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}

	return doc, nil
}

func (r *documentRepository) Delete(ctx context.Context, collection, id string) (bool, error) {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, collection, id)
	if err != nil {
		r.log.Error("Failed to delete document",
			zap.Error(err),
			zap.String("collection", collection),
			zap.String("id", id),
		)
		return false, fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}

	return result.RowsAffected() > 0, nil
}
