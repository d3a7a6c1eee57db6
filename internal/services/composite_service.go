package services

import (
	"shortlinks/internal/storage"
)

// CompositeService bundles the services used by the HTTP controller.
type CompositeService struct {
	URLService     URLService
	StatsService   StatsService
	StorageService storage.LinkStorage
}

func NewCompositeService(urlService URLService, statsService StatsService, storageService storage.LinkStorage) *CompositeService {
	return &CompositeService{
		URLService:     urlService,
		StatsService:   statsService,
		StorageService: storageService,
	}
}
