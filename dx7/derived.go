package dx7

import (
	"math"
	"strconv"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the name of pitch class x mod 12.
func NoteName(x int) string {
	x %= 12
	if x < 0 {
		x += 12
	}
	return noteNames[x]
}

// Frequency returns the oscillator frequency. In ratio mode it is a
// multiple of the played note's frequency, in fixed mode it is in Hz.
func (op *Operator) Frequency() float64 {
	if op.OscillatorMode == ModeRatio {
		coarse := float64(op.FrequencyCoarse)
		if coarse == 0 {
			coarse = 0.5
		}
		return coarse + float64(op.FrequencyFine)*coarse/100
	}
	power := float64(op.FrequencyCoarse%4) + float64(op.FrequencyFine)/100
	return math.Pow(10, power)
}

// Fixed reports whether the operator runs at a fixed frequency.
// Any mode value other than ratio counts as fixed.
func (op *Operator) Fixed() bool {
	return op.OscillatorMode != ModeRatio
}

// DisplayDetune returns the detune as shown by the synth, -7..+7.
func (op *Operator) DisplayDetune() int {
	return int(op.Detune) - 7
}

// DisplayTranspose returns the transpose in semitones relative to middle C,
// -24..+24.
func (v *Voice) DisplayTranspose() int {
	return int(v.Transpose) - 24
}

// TransposeNote returns the key that plays middle C for transpose value x,
// for example "C3" for 24. It returns false if x is out of range.
func TransposeNote(x byte) (string, bool) {
	if x > MaxTranspose {
		return "", false
	}
	return NoteName(int(x)) + strconv.Itoa(int(x)/12+1), true
}

// BreakpointNote returns the note name of a level scaling break point.
// Break point 0 is A-1 and 39 is C3. It returns false if x is out of range.
func BreakpointNote(x byte) (string, bool) {
	if x > MaxLevel {
		return "", false
	}
	// Shift up an octave before dividing so that the notes below C0 don't
	// truncate towards zero.
	octave := (int(x)-3+12)/12 - 1
	return NoteName(int(x)+9) + strconv.Itoa(octave), true
}
