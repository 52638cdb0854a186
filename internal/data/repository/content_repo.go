package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"picturetime-dashboard/internal/data/entity"
)

// collection gives typed access to one document collection. The document
// id is the record's id field.
type collection[T any] struct {
	name  string
	docs  DocumentRepository
	setID func(*T, string)
}

func (c collection[T]) decode(doc *entity.Document) (*T, error) {
	var v T
	if err := json.Unmarshal(doc.Data, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, doc.ID, err)
	}
	c.setID(&v, doc.ID)
	return &v, nil
}

func (c collection[T]) FindAll(ctx context.Context) ([]*T, error) {
	docs, err := c.docs.List(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		v, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	doc, err := c.docs.Get(ctx, c.name, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return c.decode(doc)
}

func (c collection[T]) Create(ctx context.Context, id string, v *T) error {
	c.setID(v, id)
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, id, err)
	}
	return c.docs.Create(ctx, &entity.Document{Collection: c.name, ID: id, Data: data})
}

// Update merges patch into the record; nil means not found.
func (c collection[T]) Update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	delete(patch, "id")
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode %s/%s patch: %w", c.name, id, err)
	}
	doc, err := c.docs.Merge(ctx, c.name, id, raw)
	if err != nil || doc == nil {
		return nil, err
	}
	return c.decode(doc)
}

func (c collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	return c.docs.Delete(ctx, c.name, id)
}

type LeadRepository interface {
	FindAll(ctx context.Context) ([]*entity.Lead, error)
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	Create(ctx context.Context, id string, lead *entity.Lead) error
	Update(ctx context.Context, id string, patch map[string]any) (*entity.Lead, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TheatreRepository interface {
	FindAll(ctx context.Context) ([]*entity.Theatre, error)
	FindByID(ctx context.Context, id string) (*entity.Theatre, error)
	Create(ctx context.Context, id string, theatre *entity.Theatre) error
	Update(ctx context.Context, id string, patch map[string]any) (*entity.Theatre, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type NewsRepository interface {
	FindAll(ctx context.Context) ([]*entity.News, error)
	FindByID(ctx context.Context, id string) (*entity.News, error)
	Create(ctx context.Context, id string, news *entity.News) error
	Update(ctx context.Context, id string, patch map[string]any) (*entity.News, error)
	Delete(ctx context.Context, id string) (bool, error)
}

func NewLeadRepository(docs DocumentRepository) LeadRepository {
	return collection[entity.Lead]{
		name:  entity.CollectionInquiries,
		docs:  docs,
		setID: func(l *entity.Lead, id string) { l.ID = id },
	}
}

func NewTheatreRepository(docs DocumentRepository) TheatreRepository {
	return collection[entity.Theatre]{
		name:  entity.CollectionTheatres,
		docs:  docs,
		setID: func(t *entity.Theatre, id string) { t.ID = id },
	}
}

func NewNewsRepository(docs DocumentRepository) NewsRepository {
	return collection[entity.News]{
		name:  entity.CollectionNews,
		docs:  docs,
		setID: func(n *entity.News, id string) { n.ID = id },
	}
}
