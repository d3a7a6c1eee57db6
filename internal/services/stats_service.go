package services

import (
	"shortlinks/internal/audit"
	"shortlinks/internal/domain/models"
	"shortlinks/internal/storage"

	"github.com/samber/lo"
)

// StatsService projects read-only views of the registry.
type StatsService interface {
	Detail(code string) (models.LinkDetail, error)
	SummaryList() []models.LinkSummary
}

// StatsServ implements StatsService.
type StatsServ struct {
	storage  storage.LinkStorage
	notifier audit.Notifier
}

// NewStatsService creates a StatsService.
func NewStatsService(st storage.LinkStorage, notifier audit.Notifier) StatsService {
	return &StatsServ{
		storage:  st,
		notifier: notifier,
	}
}

// Detail returns the statistics of an active link.
func (s *StatsServ) Detail(code string) (models.LinkDetail, error) {
	link, err := s.storage.Get(code)
	if err != nil {
		s.notifier.Notify(audit.Stack, audit.LevelError, "handler", lookupMessage(err))
		return models.LinkDetail{}, err
	}

	return models.LinkDetail{
		URL:         link.URL,
		CreatedAt:   models.Timestamp(link.CreatedAt),
		Expiry:      models.Timestamp(link.Expiry),
		TotalClicks: link.TotalClicks,
		Clicks: lo.Map(link.Clicks, func(c models.ClickRecord, _ int) models.ClickView {
			return models.ClickView{
				Timestamp: models.Timestamp(c.Timestamp),
				Referrer:  c.Referrer,
				Location:  c.Location,
			}
		}),
	}, nil
}

// SummaryList returns every link, expired ones included.
func (s *StatsServ) SummaryList() []models.LinkSummary {
	return s.storage.ListAll()
}
