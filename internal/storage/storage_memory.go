package storage

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"shortlinks/internal/domain/models"
	"shortlinks/internal/shortcode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// DefaultMaxAttempts caps generator calls per Create.
const DefaultMaxAttempts = 16

var errFractional = errors.New("must be a whole number of minutes")

// StorageMemory - in-memory link registry.
type StorageMemory struct {
	links       map[string]*models.ShortLink
	order       []string
	gen         shortcode.Generator
	now         func() time.Time
	maxAttempts int
	mu          sync.RWMutex
}

// Option configures StorageMemory.
type Option func(*StorageMemory)

// WithGenerator sets the shortcode source.
func WithGenerator(g shortcode.Generator) Option {
	return func(s *StorageMemory) {
		s.gen = g
	}
}

// WithClock sets the time source used for creation, expiry and click timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *StorageMemory) {
		s.now = now
	}
}

// WithMaxAttempts sets how many generated codes Create tries before giving up.
func WithMaxAttempts(n int) Option {
	return func(s *StorageMemory) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// NewStorageMemory creates an empty registry.
func NewStorageMemory(opts ...Option) *StorageMemory {
	s := &StorageMemory{
		links:       make(map[string]*models.ShortLink),
		gen:         shortcode.NewGenerator(),
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates req in the order url, validity, shortcode and registers the link.
// An expired link does not hold its code: it is replaced by the new one.
func (s *StorageMemory) Create(req models.CreateRequest) (models.ShortLink, error) {
	if !shortcode.ValidURL(req.URL) {
		return models.ShortLink{}, models.ErrInvalidURL
	}
	validity, err := validityMinutes(req.Validity)
	if err != nil {
		return models.ShortLink{}, err
	}
	if req.Shortcode != "" && !shortcode.Valid(req.Shortcode) {
		return models.ShortLink{}, models.ErrInvalidShortcode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	code := req.Shortcode
	if code != "" {
		if !s.free(code, now) {
			return models.ShortLink{}, models.ErrShortcodeTaken
		}
	} else {
		code, err = s.generate(now)
		if err != nil {
			return models.ShortLink{}, err
		}
	}

	createdAt := now.UTC().Truncate(time.Millisecond)
	link := &models.ShortLink{
		ID:        uuid.NewString(),
		Shortcode: code,
		URL:       req.URL,
		CreatedAt: createdAt,
		Expiry:    createdAt.Add(time.Duration(validity) * time.Minute),
		Clicks:    []models.ClickRecord{},
	}
	s.insert(link)

	return link.Clone(), nil
}

// Get returns a copy of the link registered under code.
func (s *StorageMemory) Get(code string) (models.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, err := s.active(code)
	if err != nil {
		return models.ShortLink{}, err
	}
	return link.Clone(), nil
}

// RecordClick increments the counter and appends the click in one step.
func (s *StorageMemory) RecordClick(code, referrer string, location models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, err := s.active(code)
	if err != nil {
		return err
	}
	link.Clicks = append(link.Clicks, models.ClickRecord{
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
		Referrer:  referrer,
		Location:  location,
	})
	link.TotalClicks = len(link.Clicks)
	return nil
}

// ListAll returns summaries of all links in insertion order.
func (s *StorageMemory) ListAll() []models.LinkSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.order, func(code string, _ int) models.LinkSummary {
		return s.links[code].Summary()
	})
}

// Ping - memory storage is always reachable.
func (s *StorageMemory) Ping() error {
	return nil
}

// active must be called with s.mu held.
func (s *StorageMemory) active(code string) (*models.ShortLink, error) {
	link, ok := s.links[code]
	if !ok {
		return nil, models.ErrNotFound
	}
	if link.Expired(s.now()) {
		return nil, models.ErrExpired
	}
	return link, nil
}

// free must be called with s.mu held.
func (s *StorageMemory) free(code string, now time.Time) bool {
	link, ok := s.links[code]
	return !ok || link.Expired(now)
}

// generate must be called with s.mu held.
func (s *StorageMemory) generate(now time.Time) (string, error) {
	for i := 0; i < s.maxAttempts; i++ {
		code, err := s.gen.Generate()
		if err != nil {
			return "", fmt.Errorf("generate shortcode: %w", err)
		}
		if s.free(code, now) {
			return code, nil
		}
	}
	return "", models.ErrGenerationExhausted
}

// insert must be called with s.mu held.
func (s *StorageMemory) insert(link *models.ShortLink) {
	if _, ok := s.links[link.Shortcode]; ok {
		s.order = lo.Without(s.order, link.Shortcode)
	}
	s.links[link.Shortcode] = link
	s.order = append(s.order, link.Shortcode)
}

func validityMinutes(v *float64) (int, error) {
	if v == nil {
		return models.DefaultValidity, nil
	}
	err := validation.Validate(*v,
		validation.Required,
		validation.By(wholeNumber),
		validation.Min(float64(models.MinValidity)),
		validation.Max(float64(models.MaxValidity)),
	)
	if err != nil {
		return 0, models.ErrInvalidValidity
	}
	return int(*v), nil
}

func wholeNumber(value interface{}) error {
	f, _ := value.(float64)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return errFractional
	}
	return nil
}
