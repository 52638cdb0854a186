package repository

import (
	"picturetime-dashboard/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Staff    StaffRepository
	Session  SessionRepository
	Document DocumentRepository
	Lead     LeadRepository
	Theatre  TheatreRepository
	News     NewsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	docs := NewDocumentRepository(db, log)
	return &Repository{
		Staff:    NewStaffRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Document: docs,
		Lead:     NewLeadRepository(docs),
		Theatre:  NewTheatreRepository(docs),
		News:     NewNewsRepository(docs),
	}
}
