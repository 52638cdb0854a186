package repository

import (
	"context"
	"encoding/json"
	"testing"

	"picturetime-dashboard/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryDocs merges patches the way "data || patch" does in Postgres.
type memoryDocs struct {
	data map[string]map[string]map[string]any
}

func newMemoryDocs() *memoryDocs {
	return &memoryDocs{data: map[string]map[string]map[string]any{}}
}

func (m *memoryDocs) doc(collection, id string) *entity.Document {
	raw, _ := json.Marshal(m.data[collection][id])
	return &entity.Document{Collection: collection, ID: id, Data: raw}
}

func (m *memoryDocs) List(_ context.Context, collection string) ([]*entity.Document, error) {
	var out []*entity.Document
	for id := range m.data[collection] {
		out = append(out, m.doc(collection, id))
	}
	return out, nil
}

func (m *memoryDocs) Get(_ context.Context, collection, id string) (*entity.Document, error) {
	if _, ok := m.data[collection][id]; !ok {
		return nil, nil
	}
	return m.doc(collection, id), nil
}

func (m *memoryDocs) Create(_ context.Context, doc *entity.Document) error {
	if _, ok := m.data[doc.Collection][doc.ID]; ok {
		return ErrDocumentExists
	}
	var v map[string]any
	if err := json.Unmarshal(doc.Data, &v); err != nil {
		return err
	}
	if m.data[doc.Collection] == nil {
		m.data[doc.Collection] = map[string]map[string]any{}
	}
	m.data[doc.Collection][doc.ID] = v
	return nil
}

func (m *memoryDocs) Merge(_ context.Context, collection, id string, patch json.RawMessage) (*entity.Document, error) {
	current, ok := m.data[collection][id]
	if !ok {
		return nil, nil
	}
	var p map[string]any
	if err := json.Unmarshal(patch, &p); err != nil {
		return nil, err
	}
	for k, v := range p {
		current[k] = v
	}
	return m.doc(collection, id), nil
}

func (m *memoryDocs) Delete(_ context.Context, collection, id string) (bool, error) {
	if _, ok := m.data[collection][id]; !ok {
		return false, nil
	}
	delete(m.data[collection], id)
	return true, nil
}

func TestTheatreRepository_CreateUpdateKeepsUntouchedFields(t *testing.T) {
	ctx := context.Background()
	repo := NewTheatreRepository(newMemoryDocs())

	err := repo.Create(ctx, "t1", &entity.Theatre{
		Address: "MG Road",
		Movies:  []entity.MoviePoster{{Name: "Inception", Link: "https://img/1.jpg"}},
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, "t1", map[string]any{"location": "Bengaluru", "id": "hijack"})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "t1", updated.ID)
	assert.Equal(t, "MG Road", updated.Address)
	assert.Equal(t, "Bengaluru", updated.Location)
	assert.Len(t, updated.Movies, 1)
}

func TestLeadRepository_MissingRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newMemoryDocs())

	lead, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, lead)

	lead, err = repo.Update(ctx, "nope", map[string]any{"status": "contacted"})
	require.NoError(t, err)
	assert.Nil(t, lead)

	deleted, err := repo.Delete(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNewsRepository_DuplicateCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewNewsRepository(newMemoryDocs())

	require.NoError(t, repo.Create(ctx, "n1", &entity.News{Title: "Opening"}))
	err := repo.Create(ctx, "n1", &entity.News{Title: "Again"})
	assert.ErrorIs(t, err, ErrDocumentExists)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "n1", all[0].ID)
}
