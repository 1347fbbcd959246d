package search

import (
	"sort"
	"sync"

	"github.com/k4lab/go-cipher-search/model"
)

// trial is the stage-one record for one evaluated formula: its parameters,
// how many constraints the bare base formula satisfied, and the total
// correction magnitude refinement would need for the rest. The correction
// total participates in ranking but never in evidence.
type trial struct {
	params      model.ParameterSet
	baseMatches int
	totalAbs    int
}

// less is the ranking rule: base matches descending, then total absolute
// correction ascending, then parameter order. The final field-wise compare
// makes the ordering total, so concurrent insertion order can never change
// the retained set.
func less(a, b trial) bool {
	if a.baseMatches != b.baseMatches {
		return a.baseMatches > b.baseMatches
	}
	if a.totalAbs != b.totalAbs {
		return a.totalAbs < b.totalAbs
	}
	return a.params.Compare(b.params) < 0
}

// topKCollector keeps the k best trials seen so far. It is the only mutable
// state shared between search workers.
type topKCollector struct {
	mu     sync.Mutex
	limit  int
	trials []trial
}

func newTopKCollector(limit int) *topKCollector {
	return &topKCollector{
		limit:  limit,
		trials: make([]trial, 0, limit+1),
	}
}

// Offer inserts the trial in rank order and drops the worst entry once the
// collector is over its limit.
func (c *topKCollector) Offer(t trial) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.trials) == c.limit && !less(t, c.trials[len(c.trials)-1]) {
		return
	}

	at := sort.Search(len(c.trials), func(i int) bool {
		return less(t, c.trials[i])
	})
	c.trials = append(c.trials, trial{})
	copy(c.trials[at+1:], c.trials[at:])
	c.trials[at] = t

	if len(c.trials) > c.limit {
		c.trials = c.trials[:c.limit]
	}
}

// Ranked returns the retained trials best-first.
func (c *topKCollector) Ranked() []trial {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]trial, len(c.trials))
	copy(out, c.trials)
	return out
}
