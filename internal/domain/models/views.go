package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// TimeLayout renders instants as UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a time.Time that marshals in TimeLayout.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

func (t Timestamp) String() string {
	return time.Time(t).UTC().Format(TimeLayout)
}

// Time returns the underlying instant.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// ShortenRequest is the POST /shorturls body.
type ShortenRequest struct {
	URL       string    `json:"url"`
	Validity  *Validity `json:"validity,omitempty"`
	Shortcode string    `json:"shortcode,omitempty"`
}

// Validity accepts a JSON number or a numeric string. Anything else decodes to NaN
// and is rejected by the registry.
type Validity float64

// UnmarshalJSON implements json.Unmarshaler.
func (v *Validity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			*v = Validity(f)
			return nil
		}
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*v = Validity(f)
			return nil
		}
	}
	*v = Validity(math.NaN())
	return nil
}

// ShortenResponse is the 201 body of POST /shorturls.
type ShortenResponse struct {
	ShortLink string    `json:"shortLink"`
	Expiry    Timestamp `json:"expiry"`
}

// ClickView is one element of LinkDetail.Clicks.
type ClickView struct {
	Timestamp Timestamp `json:"timestamp"`
	Referrer  string    `json:"referrer"`
	Location  Location  `json:"location"`
}

// LinkDetail is the GET /shorturls/{shortcode} body.
type LinkDetail struct {
	URL         string      `json:"url"`
	CreatedAt   Timestamp   `json:"createdAt"`
	Expiry      Timestamp   `json:"expiry"`
	TotalClicks int         `json:"totalClicks"`
	Clicks      []ClickView `json:"clicks"`
}

// LinkSummary is one element of the GET /shorturls list.
type LinkSummary struct {
	URL         string    `json:"url"`
	Shortcode   string    `json:"shortcode"`
	CreatedAt   Timestamp `json:"createdAt"`
	Expiry      Timestamp `json:"expiry"`
	TotalClicks int       `json:"totalClicks"`
}

// LinkList is the GET /shorturls body.
type LinkList struct {
	Items []LinkSummary `json:"items"`
}

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
