package services

import (
	"errors"
	"net/netip"
	"strings"

	"shortlinks/internal/domain/models"
)

// ClassifyAddr maps a client address to a coarse location.
// IPv4-mapped IPv6 addresses are classified as their IPv4 form.
func ClassifyAddr(addr string) models.Location {
	ip, ok := parseAddr(addr)
	if !ok {
		return models.LocationUnknown
	}
	ip = ip.Unmap()

	switch {
	case ip.IsLoopback():
		return models.LocationLocal
	case !ip.Is4():
		return models.LocationUnknown
	case ip.IsPrivate():
		return models.LocationPrivate
	default:
		return models.LocationPublic
	}
}

func parseAddr(addr string) (netip.Addr, bool) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return netip.Addr{}, false
	}
	if ap, err := netip.ParseAddrPort(addr); err == nil {
		return ap.Addr(), true
	}
	ip, err := netip.ParseAddr(strings.Trim(addr, "[]"))
	if err != nil {
		return netip.Addr{}, false
	}
	return ip, true
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidURL):
		return "Invalid URL"
	case errors.Is(err, models.ErrInvalidValidity):
		return "Invalid validity"
	case errors.Is(err, models.ErrInvalidShortcode):
		return "Invalid shortcode format"
	case errors.Is(err, models.ErrShortcodeTaken):
		return "Shortcode collision"
	default:
		return err.Error()
	}
}

func lookupMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "Shortcode not found"
	case errors.Is(err, models.ErrExpired):
		return "Shortcode expired"
	default:
		return err.Error()
	}
}
