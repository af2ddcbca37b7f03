package store

import (
	"github.com/aimplatform/reviewintel/internal/logger"
)

// Storages bundles every repository behind one handle for wiring into the
// service layer.
type Storages struct {
	UserRepository
	ReviewRepository
	ActivityRepository
	AnalysisRepository
}

// NewStorages constructs all repositories over the shared connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	log.Debug().Msg("creating storages")

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		ReviewRepository:   NewReviewRepository(db, log),
		ActivityRepository: NewActivityRepository(db, log),
		AnalysisRepository: NewAnalysisRepository(db, log),
	}
}
