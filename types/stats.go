package types

import "fmt"

// Statistics is a point-in-time snapshot of cache counters.
type Statistics struct {
	Hits          int64  `json:"hits"`
	Misses        int64  `json:"misses"`
	Size          int    `json:"size"`
	TotalRequests int64  `json:"totalRequests"`
	HitRate       string `json:"hitRate"`

	// Expirations counts entries removed for being past their TTL.
	Expirations int64 `json:"expirations"`
	// Evictions counts entries removed by the capacity bound.
	Evictions int64 `json:"evictions"`
}

// NewStatistics builds a snapshot and derives TotalRequests and HitRate.
func NewStatistics(hits, misses int64, size int, expirations, evictions int64) Statistics {
	return Statistics{
		Hits:          hits,
		Misses:        misses,
		Size:          size,
		TotalRequests: hits + misses,
		HitRate:       FormatHitRate(hits, misses),
		Expirations:   expirations,
		Evictions:     evictions,
	}
}

// FormatHitRate renders hits/(hits+misses) as a percentage with two decimals.
// It returns "0%" when there have been no requests.
func FormatHitRate(hits, misses int64) string {
	total := hits + misses
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(hits)/float64(total)*100)
}
