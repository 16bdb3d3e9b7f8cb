// Package stats computes per-user funnel statistics over non-archived
// job applications.
package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/Khushi740/job-tracker/internal/types"
)

// Summary holds the per-status breakdown for one user. Every status key is
// always present, zero included, so clients never have to guard lookups.
type Summary struct {
	Total     int `json:"total"`
	Applied   int `json:"applied"`
	Interview int `json:"interview"`
	Offer     int `json:"offer"`
	Rejected  int `json:"rejected"`
	Withdrawn int `json:"withdrawn"`

	// SuccessRate is offers over total; InterviewRate counts offers too,
	// since reaching offer means the candidate got through interviews.
	// Both are percentages rounded to one decimal place, 0 when total is 0.
	SuccessRate   float64 `json:"successRate"`
	InterviewRate float64 `json:"interviewRate"`
}

// CountsProvider is the slice of the record store the aggregator needs.
type CountsProvider interface {
	CountByStatus(ctx context.Context, owner uuid.UUID) (map[types.Status]int, error)
}

// Aggregator computes summaries from a record store.
type Aggregator struct {
	store CountsProvider
}

// New creates an Aggregator backed by the given store.
func New(store CountsProvider) *Aggregator {
	return &Aggregator{store: store}
}

// ForUser returns the funnel summary for one owner's non-archived records.
func (a *Aggregator) ForUser(ctx context.Context, owner uuid.UUID) (*Summary, error) {
	counts, err := a.store.CountByStatus(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	s := Summarize(counts)
	return &s, nil
}

// Summarize folds a status-count map into a Summary. Statuses missing from
// the map count as zero; unknown keys are ignored.
func Summarize(counts map[types.Status]int) Summary {
	s := Summary{
		Applied:   counts[types.StatusApplied],
		Interview: counts[types.StatusInterview],
		Offer:     counts[types.StatusOffer],
		Rejected:  counts[types.StatusRejected],
		Withdrawn: counts[types.StatusWithdrawn],
	}
	s.Total = s.Applied + s.Interview + s.Offer + s.Rejected + s.Withdrawn
	s.SuccessRate = rate(s.Offer, s.Total)
	s.InterviewRate = rate(s.Interview+s.Offer, s.Total)
	return s
}

// rate returns part/total as a percentage rounded to one decimal place,
// guarding against division by zero.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
