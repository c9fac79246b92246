// Package digraph turns raw bytes into 16-bit byte-pair values and counts them.
package digraph

import (
	"fmt"
	"strings"
)

// Pairing selects how adjacent bytes are combined into digraph values.
type Pairing int

const (
	// PairingHalf slides a two-byte window one byte at a time but stops after
	// len/2 steps, so only the first half of the input is covered.
	PairingHalf Pairing = iota
	// PairingSliding slides the window over the whole input (len-1 values).
	PairingSliding
	// PairingDisjoint splits the input into non-overlapping pairs (len/2 values).
	PairingDisjoint
)

func (p Pairing) String() string {
	switch p {
	case PairingHalf:
		return "half"
	case PairingSliding:
		return "sliding"
	case PairingDisjoint:
		return "disjoint"
	}
	return fmt.Sprintf("pairing(%d)", int(p))
}

// ParsePairing parses a pairing name as used in configuration.
func ParsePairing(s string) (Pairing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "half":
		return PairingHalf, nil
	case "sliding":
		return PairingSliding, nil
	case "disjoint":
		return PairingDisjoint, nil
	}
	return PairingHalf, fmt.Errorf("unknown pairing %q (want half, sliding or disjoint)", s)
}

// Extract returns floor(len(data)/2) digraphs, the i-th being data[i]<<8 | data[i+1].
func Extract(data []byte) []uint16 {
	return ExtractWith(data, PairingHalf)
}

// ExtractWith is Extract with an explicit pairing policy.
func ExtractWith(data []byte, p Pairing) []uint16 {
	if len(data) < 2 {
		return nil
	}
	var out []uint16
	switch p {
	case PairingSliding:
		out = make([]uint16, len(data)-1)
		for i := range out {
			out[i] = pair(data[i], data[i+1])
		}
	case PairingDisjoint:
		out = make([]uint16, len(data)/2)
		for i := range out {
			out[i] = pair(data[2*i], data[2*i+1])
		}
	default:
		out = make([]uint16, len(data)/2)
		for i := range out {
			out[i] = pair(data[i], data[i+1])
		}
	}
	return out
}

func pair(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) }
