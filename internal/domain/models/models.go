// Package models holds the short link domain types and the JSON views built from them.
package models

import (
	"errors"
	"time"
)

// Validity bounds in minutes.
const (
	DefaultValidity = 30
	MinValidity     = 1
	MaxValidity     = 1440
)

// Location is a coarse classification of the address a click came from.
type Location string

const (
	LocationLocal   Location = "local"
	LocationPrivate Location = "private"
	LocationPublic  Location = "public"
	LocationUnknown Location = "unknown"
)

// DirectReferrer is recorded when a click carries no Referer header.
const DirectReferrer = "direct"

var (
	// ErrInvalidURL - destination is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidValidity - validity is not an integer number of minutes in [1, 1440].
	ErrInvalidValidity = errors.New("invalid validity")
	// ErrInvalidShortcode - shortcode is not 3-12 alphanumeric characters.
	ErrInvalidShortcode = errors.New("invalid shortcode")
	// ErrShortcodeTaken - an active link already owns the shortcode.
	ErrShortcodeTaken = errors.New("shortcode already exists")
	// ErrNotFound - no link is registered under the shortcode.
	ErrNotFound = errors.New("short link not found")
	// ErrExpired - the link exists but its expiry has passed.
	ErrExpired = errors.New("short link expired")
	// ErrGenerationExhausted - the generator kept producing codes that are in use.
	ErrGenerationExhausted = errors.New("shortcode generation attempts exhausted")
)

// ClickRecord - a single redirect through a short link.
type ClickRecord struct {
	Timestamp time.Time
	Referrer  string
	Location  Location
}

// ShortLink - a registered mapping from shortcode to destination URL.
type ShortLink struct {
	// ID: internal identifier, used for log correlation only.
	ID string
	// Shortcode: public identifier of the link.
	Shortcode string
	// URL: destination the link redirects to.
	URL string
	// CreatedAt: creation time, millisecond precision, UTC.
	CreatedAt time.Time
	// Expiry: CreatedAt plus the validity period.
	Expiry time.Time
	// TotalClicks: always equal to len(Clicks).
	TotalClicks int
	// Clicks: click history in chronological order.
	Clicks []ClickRecord
}

// Expired reports whether the link is past its expiry at the given instant.
func (l *ShortLink) Expired(now time.Time) bool {
	return now.After(l.Expiry)
}

// Clone returns a deep copy of the link.
func (l *ShortLink) Clone() ShortLink {
	c := *l
	c.Clicks = make([]ClickRecord, len(l.Clicks))
	copy(c.Clicks, l.Clicks)
	return c
}

// Summary returns the list view of the link.
func (l *ShortLink) Summary() LinkSummary {
	return LinkSummary{
		URL:         l.URL,
		Shortcode:   l.Shortcode,
		CreatedAt:   Timestamp(l.CreatedAt),
		Expiry:      Timestamp(l.Expiry),
		TotalClicks: l.TotalClicks,
	}
}

// CreateRequest - input of link creation.
type CreateRequest struct {
	URL string
	// Validity: minutes, nil means default.
	Validity *float64
	// Shortcode: requested code, empty means generate one.
	Shortcode string
}
