// SPDX-License-Identifier: EPL-2.0

package input

import "unicode"

// Layout maps typed runes to key ids (MIDI numbering).
type Layout map[rune]int32

// Two rows laid out like a piano: white keys on the letter row, black keys
// on the row above.
const (
	lowerRow = "zsxdcvgbhnjm,l.;/"
	upperRow = "q2w3er5t6y7ui9o0p"
)

// Base notes of the two rows, C3 and C4.
const (
	LowerBase int32 = 48
	UpperBase int32 = 60
)

// PianoLayout returns the default two-row layout: z..m plays C3..B3, q..u
// plays C4..B4, each row continuing upward on its extra keys.
func PianoLayout() Layout {
	l := make(Layout, len(lowerRow)+len(upperRow))
	for i, r := range lowerRow {
		l[r] = LowerBase + int32(i)
	}
	for i, r := range upperRow {
		l[r] = UpperBase + int32(i)
	}
	return l
}

// Key returns the key id for r, ignoring letter case.
func (l Layout) Key(r rune) (int32, bool) {
	k, ok := l[unicode.ToLower(r)]
	return k, ok
}

// Transpose returns a copy of l shifted by semitones.
func (l Layout) Transpose(semitones int32) Layout {
	out := make(Layout, len(l))
	for r, k := range l {
		out[r] = k + semitones
	}
	return out
}
