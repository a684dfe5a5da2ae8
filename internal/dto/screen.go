package dto

import (
	"time"

	"github.com/noah-isme/campus-attendance-gateway/internal/query"
)

// Screen is the payload of every list endpoint: the filtered records plus the option
// lists the client renders in its filter pickers.
type Screen[T any] struct {
	Items     []T             `json:"items"`
	Facets    []query.Facet   `json:"facets"`
	Filters   query.Selection `json:"filters"`
	Total     int             `json:"total"`
	Matched   int             `json:"matched"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// CheckerOption is one entry of the checker picker used by room and schedule forms.
type CheckerOption struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
