package storage

import "time"

type registry struct {
	now func() time.Time
}

func newRegistry() *registry {
	return &registry{now: time.Now}
}

func (r *registry) stamp() time.Time {
	return r.now()
}

func expiry() time.Time {
	return time.Now().Add(time.Minute) // want "wallclock time.Now\\(\\) called directly, use the injected clock"
}
