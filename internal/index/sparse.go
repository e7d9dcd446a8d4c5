package index

import (
	"sort"

	apperrors "minisearch/pkg/errors"
)

// SparseEntry is one nonzero (key, count) pair of a SparseVector.
type SparseEntry struct {
	Key   int `json:"key"`
	Count int `json:"count"`
}

// SparseVector maps integer keys to nonzero counts. It stands in for a dense
// array of length = number of documents: positions holding zero are simply
// absent, so Get on a missing key and Get on an explicit zero are
// indistinguishable.
//
// The invariant is that no entry ever holds zero; Set and Increment delete
// the entry when a value reaches zero.
type SparseVector struct {
	data map[int]int
}

// NewSparseVector returns an empty SparseVector.
func NewSparseVector() *SparseVector {
	return &SparseVector{data: make(map[int]int)}
}

// Set stores value at key. A zero value removes the entry instead.
func (v *SparseVector) Set(key, value int) {
	if value == 0 {
		delete(v.data, key)
		return
	}
	v.data[key] = value
}

// Get returns the value at key, or 0 when absent.
func (v *SparseVector) Get(key int) int {
	return v.data[key]
}

// Increment adds delta to the value at key, removing the entry if the result
// is zero. A negative delta is a caller-contract violation and fails before
// touching the vector.
func (v *SparseVector) Increment(key, delta int) error {
	if delta < 0 {
		return apperrors.Newf(apperrors.ErrInvalidInput, 400, "negative increment delta %d", delta)
	}
	v.Set(key, v.data[key]+delta)
	return nil
}

// Items returns the nonzero entries sorted by key. The slice is a snapshot:
// repeated calls without intervening writes yield identical results.
func (v *SparseVector) Items() []SparseEntry {
	items := make([]SparseEntry, 0, len(v.data))
	for k, c := range v.data {
		items = append(items, SparseEntry{Key: k, Count: c})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items
}

// Len returns the number of nonzero entries.
func (v *SparseVector) Len() int {
	return len(v.data)
}

// Density returns the nonzero-entry count divided by universe (typically the
// total document count). It is a reporting figure only; universe <= 0 yields 0.
func (v *SparseVector) Density(universe int) float64 {
	if universe <= 0 {
		return 0
	}
	return float64(len(v.data)) / float64(universe)
}
