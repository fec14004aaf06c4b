package pipeline

import (
	"time"
)

// Summary describes the outcome of one pipeline batch.
type Summary struct {
	// BatchID identifies the batch in logs.
	BatchID string
	// Total is the number of submitted jobs.
	Total int
	// ByStatus counts jobs per final status.
	ByStatus map[Status]int
	// Elapsed is the wall time of the batch.
	Elapsed time.Duration
}

// NewSummary counts final statuses of jobs.
func NewSummary(batchID string, jobs []*AssemblyJob, elapsed time.Duration) Summary {
	res := Summary{
		BatchID:  batchID,
		Total:    len(jobs),
		ByStatus: make(map[Status]int),
		Elapsed:  elapsed,
	}
	for _, j := range jobs {
		res.ByStatus[j.Status()]++
	}
	return res
}

// Succeeded returns the number of successful jobs.
func (s Summary) Succeeded() int {
	return s.ByStatus[StatusSucceeded]
}
