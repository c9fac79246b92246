// Package report summarizes a digraph histogram as text, JSON or a bar chart.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/merridan/filevis/internal/digraph"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Entry is one digraph and how often it occurred.
type Entry struct {
	Digraph   uint16  `json:"digraph"`
	Count     uint32  `json:"count"`
	Frequency float64 `json:"frequency"`
}

// Label renders the digraph as two hex bytes, e.g. "00 ff".
func (e Entry) Label() string {
	return fmt.Sprintf("%02x %02x", e.Digraph>>8, e.Digraph&0xFF)
}

// Summary describes a loaded file.
type Summary struct {
	File     string  `json:"file"`
	Bytes    int     `json:"bytes"`
	Pairing  string  `json:"pairing"`
	Total    uint64  `json:"total"`
	Distinct int     `json:"distinct"`
	Max      uint32  `json:"max"`
	Entropy  float64 `json:"entropy_bits"`
	Top      []Entry `json:"top"`
}

// Summarize builds a Summary with the n most frequent digraphs.
func Summarize(file string, size int, p digraph.Pairing, h digraph.Histogram, n int) Summary {
	return Summary{
		File:     file,
		Bytes:    size,
		Pairing:  p.String(),
		Total:    h.Total(),
		Distinct: h.Distinct(),
		Max:      h.Max(),
		Entropy:  h.Entropy(),
		Top:      Top(h, n),
	}
}

// Top returns up to n digraphs ordered by descending count, ties by value.
func Top(h digraph.Histogram, n int) []Entry {
	var entries []Entry
	for v, c := range h.Counts() {
		if c == 0 {
			continue
		}
		entries = append(entries, Entry{Digraph: uint16(v), Count: c, Frequency: float64(c) / float64(h.Max())})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// WriteText prints a human readable summary.
func WriteText(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "file:     %s\nbytes:    %d\npairing:  %s\ndigraphs: %d\ndistinct: %d\nmax:      %d\nentropy:  %.4f bits\n",
		s.File, s.Bytes, s.Pairing, s.Total, s.Distinct, s.Max, s.Entropy)
	if err != nil {
		return err
	}
	for i, e := range s.Top {
		if _, err := fmt.Fprintf(w, "%3d. %s  %8d  %.4f\n", i+1, e.Label(), e.Count, e.Frequency); err != nil {
			return err
		}
	}
	return nil
}

// RenderChart draws the top entries as a PNG bar chart.
func RenderChart(w io.Writer, title string, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no digraphs to chart")
	}
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		bars = append(bars, chart.Value{Value: float64(e.Count), Label: e.Label()})
	}
	bc := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      max(480, 60*len(bars)),
		Height:     400,
		BarWidth:   40,
		Bars:       bars,
		// explicit range: equal bar heights would give go-chart an empty domain
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: float64(entries[0].Count)}},
	}
	return bc.Render(chart.PNG, w)
}
