// Package view holds the brightness/contrast state of a digraph visualization
// and regenerates its intensity buffer on every change.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/merridan/filevis/internal/digraph"
	"github.com/merridan/filevis/internal/tone"
)

const (
	BrightnessStep = 0.5
	ContrastStep   = 0.125
)

// Command is a discrete user action on the view parameters.
type Command int

const (
	IncreaseBrightness Command = iota
	DecreaseBrightness
	IncreaseContrast
	DecreaseContrast
	Reset
)

var commandNames = map[Command]string{
	IncreaseBrightness: "brighter",
	DecreaseBrightness: "darker",
	IncreaseContrast:   "more-contrast",
	DecreaseContrast:   "less-contrast",
	Reset:              "reset",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand resolves a command name such as "brighter" or "reset".
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// State is owned by a single control loop; it is not safe for concurrent use.
type State struct {
	params  tone.Params
	pairing digraph.Pairing
	hist    digraph.Histogram
	freqs   digraph.FrequencyTable
	buf     *tone.Buffer
}

// New returns a state with default parameters and no file loaded.
func New(pairing digraph.Pairing) *State {
	return &State{
		params:  tone.DefaultParams(),
		pairing: pairing,
		buf:     tone.NewBuffer(),
	}
}

// Load replaces the frequency table with one computed from data and resets the
// parameters. Empty or single-byte data leaves the buffer blank.
func (s *State) Load(data []byte) {
	s.hist, s.freqs = digraph.Frequencies(data, s.pairing)
	s.params = tone.DefaultParams()
	s.buf.Clear()
	s.regenerate()
}

// Apply executes cmd and regenerates the buffer.
func (s *State) Apply(cmd Command) {
	switch cmd {
	case IncreaseBrightness:
		s.params.Brightness += BrightnessStep
	case DecreaseBrightness:
		s.params.Brightness = max(0, s.params.Brightness-BrightnessStep)
	case IncreaseContrast:
		s.params.Contrast += ContrastStep
	case DecreaseContrast:
		s.params.Contrast = max(0, s.params.Contrast-ContrastStep)
	case Reset:
		s.params = tone.DefaultParams()
	default:
		return
	}
	s.regenerate()
}

// Tune sets both parameters at once, clamped at their floors, for batch
// rendering where there is no interactive command stream.
func (s *State) Tune(p tone.Params) {
	s.params = tone.Params{Brightness: max(0, p.Brightness), Contrast: max(0, p.Contrast)}
	s.regenerate()
}

func (s *State) regenerate() {
	tone.Render(s.freqs, s.params, s.buf)
}

func (s *State) Params() tone.Params { return s.params }
func (s *State) Histogram() digraph.Histogram { return s.hist }
func (s *State) Frequencies() digraph.FrequencyTable { return s.freqs }
func (s *State) Loaded() bool { return !s.freqs.Empty() }

// Buffer returns the current intensity buffer. It is rewritten in place by
// Load and Apply.
func (s *State) Buffer() *tone.Buffer { return s.buf }

// Caption returns the brightness and contrast indicator lines.
func (s *State) Caption() (string, string) {
	return "bright: +" + formatParam(s.params.Brightness), "cont: *" + formatParam(s.params.Contrast)
}

func formatParam(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
