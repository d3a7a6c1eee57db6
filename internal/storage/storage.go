package storage

import (
	"shortlinks/internal/domain/models"
)

// LinkStorage is the link registry contract.
type LinkStorage interface {
	// Create validates req and registers a new link.
	Create(req models.CreateRequest) (models.ShortLink, error)
	// Get returns a copy of an active link.
	Get(shortcode string) (models.ShortLink, error)
	// RecordClick appends a click to an active link.
	RecordClick(shortcode, referrer string, location models.Location) error
	// ListAll returns every link in insertion order, expired ones included.
	ListAll() []models.LinkSummary
	Ping() error
}
