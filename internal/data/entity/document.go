package entity

import (
	"encoding/json"
	"time"
)

// Collections held in the documents table.
const (
	CollectionInquiries = "inquiries"
	CollectionTheatres  = "theatres"
	CollectionNews      = "news"
)

// Document is one JSON record of a collection.
type Document struct {
	Collection string          `db:"collection"`
	ID         string          `db:"id"`
	Data       json.RawMessage `db:"data"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
