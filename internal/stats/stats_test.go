package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Khushi740/job-tracker/internal/types"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(map[types.Status]int{})

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.SuccessRate, "no division by zero")
	assert.Equal(t, 0.0, s.InterviewRate)
}

func TestSummarize_AllKeysPresent(t *testing.T) {
	s := Summarize(map[types.Status]int{types.StatusApplied: 3})

	assert.Equal(t, 3, s.Applied)
	assert.Equal(t, 0, s.Interview)
	assert.Equal(t, 0, s.Offer)
	assert.Equal(t, 0, s.Rejected)
	assert.Equal(t, 0, s.Withdrawn)
	assert.Equal(t, 3, s.Total)
}

func TestSummarize_Rates(t *testing.T) {
	tests := []struct {
		name          string
		counts        map[types.Status]int
		total         int
		successRate   float64
		interviewRate float64
	}{
		{
			name: "one of each",
			counts: map[types.Status]int{
				types.StatusApplied:   1,
				types.StatusInterview: 1,
				types.StatusOffer:     1,
				types.StatusRejected:  1,
				types.StatusWithdrawn: 1,
			},
			total:         5,
			successRate:   20.0,
			interviewRate: 40.0,
		},
		{
			name: "rounding to one decimal",
			counts: map[types.Status]int{
				types.StatusApplied: 2,
				types.StatusOffer:   1,
			},
			total:         3,
			successRate:   33.3,
			interviewRate: 33.3,
		},
		{
			name: "offer counts toward interview rate",
			counts: map[types.Status]int{
				types.StatusOffer: 2,
			},
			total:         2,
			successRate:   100.0,
			interviewRate: 100.0,
		},
		{
			name: "two thirds rounds up",
			counts: map[types.Status]int{
				types.StatusInterview: 2,
				types.StatusRejected:  1,
			},
			total:         3,
			successRate:   0.0,
			interviewRate: 66.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.counts)
			assert.Equal(t, tt.total, s.Total)
			assert.InDelta(t, tt.successRate, s.SuccessRate, 1e-9)
			assert.InDelta(t, tt.interviewRate, s.InterviewRate, 1e-9)
		})
	}
}

func TestSummarize_CountsSumToTotal(t *testing.T) {
	counts := map[types.Status]int{
		types.StatusApplied:   4,
		types.StatusInterview: 2,
		types.StatusOffer:     1,
		types.StatusRejected:  5,
		types.StatusWithdrawn: 3,
	}
	s := Summarize(counts)
	assert.Equal(t, s.Applied+s.Interview+s.Offer+s.Rejected+s.Withdrawn, s.Total)
}
