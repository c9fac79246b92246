package digraph

import "math"

// Size is the number of distinct digraph values.
const Size = 1 << 16

// Histogram is a dense per-digraph counter with the running maximum.
// The zero value is the empty histogram: no file has been counted.
type Histogram struct {
	counts []uint32
	max    uint32
}

// Build counts every value. An empty input gives the empty histogram.
func Build(values []uint16) Histogram {
	if len(values) == 0 {
		return Histogram{}
	}
	h := Histogram{counts: make([]uint32, Size)}
	for _, v := range values {
		h.counts[v]++
		// a single count grows by one per step, so catching up by one keeps max exact
		if h.counts[v] > h.max {
			h.max++
		}
	}
	return h
}

// Len is Size for a populated histogram and 0 for the empty one.
func (h Histogram) Len() int { return len(h.counts) }

// Max is the largest count.
func (h Histogram) Max() uint32 { return h.max }

// Count returns the occurrences of v, 0 for the empty histogram.
func (h Histogram) Count(v uint16) uint32 {
	if h.counts == nil {
		return 0
	}
	return h.counts[v]
}

// Counts exposes the dense count slice. Callers must not modify it.
func (h Histogram) Counts() []uint32 { return h.counts }

// Total is the number of digraphs counted.
func (h Histogram) Total() uint64 {
	var n uint64
	for _, c := range h.counts {
		n += uint64(c)
	}
	return n
}

// Distinct is the number of digraph values seen at least once.
func (h Histogram) Distinct() int {
	n := 0
	for _, c := range h.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// Entropy returns the Shannon entropy of the digraph distribution in bits (0..16).
func (h Histogram) Entropy() float64 {
	total := float64(h.Total())
	if total == 0 {
		return 0
	}
	var e float64
	for _, c := range h.counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		e -= p * math.Log2(p)
	}
	return e
}

// FrequencyTable holds counts divided by the maximum count, indexed by digraph.
type FrequencyTable []float64

// Empty reports whether no file has been loaded.
func (t FrequencyTable) Empty() bool { return len(t) == 0 }

// Normalize divides every count by Max. The empty histogram yields an empty table.
func (h Histogram) Normalize() FrequencyTable {
	if h.Len() == 0 || h.max == 0 {
		return nil
	}
	m := float64(h.max)
	t := make(FrequencyTable, len(h.counts))
	for i, c := range h.counts {
		t[i] = float64(c) / m
	}
	return t
}

// Frequencies runs extraction, counting and normalization in one go.
func Frequencies(data []byte, p Pairing) (Histogram, FrequencyTable) {
	h := Build(ExtractWith(data, p))
	return h, h.Normalize()
}
