package handlers

import "time"

func started() time.Time {
	return time.Now()
}
