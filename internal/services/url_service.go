// Package services contains the short link use cases: creation, redirect with
// click recording, and the read-only statistics views.
package services

import (
	"shortlinks/internal/audit"
	"shortlinks/internal/domain/models"
	"shortlinks/internal/storage"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Visit describes the request that followed a short link.
type Visit struct {
	// RemoteAddr: client address, "ip" or "ip:port".
	RemoteAddr string
	// Referrer: Referer header, empty when absent.
	Referrer string
}

// URLService creates links and resolves them for redirects.
type URLService interface {
	Shorten(req models.CreateRequest) (models.ShortLink, error)
	Resolve(code string, visit Visit) (string, error)
}

// URLserv implements URLService over a LinkStorage.
type URLserv struct {
	storage  storage.LinkStorage
	notifier audit.Notifier
	sugar    *zap.SugaredLogger
}

// NewURLService creates a URLService.
func NewURLService(st storage.LinkStorage, notifier audit.Notifier, sugar *zap.SugaredLogger) URLService {
	return &URLserv{
		storage:  st,
		notifier: notifier,
		sugar:    sugar,
	}
}

// Shorten registers a new link.
func (s *URLserv) Shorten(req models.CreateRequest) (models.ShortLink, error) {
	link, err := s.storage.Create(req)
	if err != nil {
		s.sugar.Debugw("shorten rejected",
			"url", req.URL,
			"shortcode", req.Shortcode,
			"error", err,
		)
		s.notifier.Notify(audit.Stack, audit.LevelError, "handler", rejectionMessage(err))
		return models.ShortLink{}, err
	}

	s.sugar.Infow("short link created",
		"id", link.ID,
		"shortcode", link.Shortcode,
		"expiry", link.Expiry,
	)
	s.notifier.Notify(audit.Stack, audit.LevelInfo, "create", "Created "+link.Shortcode)
	return link, nil
}

// Resolve returns the destination of code and records the click.
func (s *URLserv) Resolve(code string, visit Visit) (string, error) {
	link, err := s.storage.Get(code)
	if err != nil {
		s.notifier.Notify(audit.Stack, audit.LevelError, "redirect", lookupMessage(err))
		return "", err
	}

	location := ClassifyAddr(visit.RemoteAddr)
	referrer := lo.Ternary(visit.Referrer != "", visit.Referrer, models.DirectReferrer)
	if err := s.storage.RecordClick(code, referrer, location); err != nil {
		s.notifier.Notify(audit.Stack, audit.LevelError, "redirect", lookupMessage(err))
		return "", err
	}

	s.sugar.Debugw("redirect",
		"id", link.ID,
		"shortcode", code,
		"location", location,
	)
	s.notifier.Notify(audit.Stack, audit.LevelInfo, "redirect", "Redirecting "+code)
	return link.URL, nil
}
