package reconcile

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Freq is a value with the number of its occurrences.
type Freq struct {
	Key   string
	Count int
}

// String renders the frequency as "key (count)".
func (f Freq) String() string {
	return fmt.Sprintf("%s (%d)", f.Key, f.Count)
}

// Counter counts values and remembers the order in which each value was
// seen first.
type Counter struct {
	idx   map[string]int
	items []Freq
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{idx: make(map[string]int)}
}

// Add counts one occurrence of k.
func (c *Counter) Add(k string) {
	if i, ok := c.idx[k]; ok {
		c.items[i].Count++
		return
	}
	c.idx[k] = len(c.items)
	c.items = append(c.items, Freq{Key: k, Count: 1})
}

// Ranked returns frequencies sorted by descending count. Equal counts
// keep first-seen order.
func (c *Counter) Ranked() []Freq {
	res := slices.Clone(c.items)
	slices.SortStableFunc(res, func(a, b Freq) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return res
}

// FormatFreqs joins frequencies as "NRPS (3),PKS (3),RiPP (1)".
func FormatFreqs(fs []Freq) string {
	ss := make([]string, len(fs))
	for i := range fs {
		ss[i] = fs[i].String()
	}
	return strings.Join(ss, ",")
}
