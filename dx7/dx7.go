// Package dx7 decodes Yamaha DX7 voice bank and single voice sysex dumps.
package dx7

import "fmt"

// File sizes of the accepted dump shapes.
const (
	BankSysexSize   = 4104 // 32 voice bulk dump, sysex framed
	BankDataSize    = 4096 // 32 voice bulk dump, no framing
	SingleSysexSize = 163  // single voice dump, sysex framed
	SingleDataSize  = 155  // single voice payload
)

// Voice record sizes.
const (
	NumVoices    = 32
	NumOperators = 6
	NameLength   = 10

	PackedOperatorSize   = 17
	PackedVoiceSize      = 128
	UnpackedOperatorSize = 21
	UnpackedVoiceSize    = 155
)

// Largest valid value of each parameter. Decoding accepts anything the
// bitfield can hold; these limits are only used to flag bad values.
const (
	MaxLevel        = 99 // EG rates and levels, depths, speeds, output level
	MaxCurve        = 3
	MaxRateScale    = 7
	MaxDetune       = 14
	MaxAmpModSens   = 3
	MaxKeyVelSens   = 7
	MaxCoarse       = 31
	MaxAlgorithm    = 31
	MaxFeedback     = 7
	MaxSwitch       = 1
	MaxLFOWave      = 5
	MaxPitchModSens = 7
	MaxTranspose    = 48
	MaxOscMode      = 1
)

// Operator is one of the six FM operators of a voice. All fields hold the raw
// stored values; use the methods for display values.
type Operator struct {
	Rates  [4]byte `json:"rates" yaml:"rates"`   // EG R1..R4
	Levels [4]byte `json:"levels" yaml:"levels"` // EG L1..L4

	// Keyboard level scaling.
	BreakPoint byte  `json:"break_point" yaml:"break_point"`
	LeftDepth  byte  `json:"left_depth" yaml:"left_depth"`
	RightDepth byte  `json:"right_depth" yaml:"right_depth"`
	LeftCurve  Curve `json:"left_curve" yaml:"left_curve"`
	RightCurve Curve `json:"right_curve" yaml:"right_curve"`

	RateScale              byte `json:"rate_scale" yaml:"rate_scale"`
	Detune                 byte `json:"detune" yaml:"detune"` // 0..14, 7 is center
	AmpModSensitivity      byte `json:"amp_mod_sensitivity" yaml:"amp_mod_sensitivity"`
	KeyVelocitySensitivity byte `json:"key_velocity_sensitivity" yaml:"key_velocity_sensitivity"`
	OutputLevel            byte `json:"output_level" yaml:"output_level"`

	OscillatorMode  OscillatorMode `json:"oscillator_mode" yaml:"oscillator_mode"`
	FrequencyCoarse byte           `json:"frequency_coarse" yaml:"frequency_coarse"`
	FrequencyFine   byte           `json:"frequency_fine" yaml:"frequency_fine"`
}

// Voice is a single DX7 patch.
type Voice struct {
	// Operators are kept in stored order: Operators[0] is operator 6 and
	// Operators[5] is operator 1. Use Op for display numbering.
	Operators [NumOperators]Operator `json:"operators" yaml:"operators"`

	PitchRates  [4]byte `json:"pitch_rates" yaml:"pitch_rates"`
	PitchLevels [4]byte `json:"pitch_levels" yaml:"pitch_levels"`

	Algorithm  byte `json:"algorithm" yaml:"algorithm"` // 0..31
	Feedback   byte `json:"feedback" yaml:"feedback"`
	OscKeySync byte `json:"osc_key_sync" yaml:"osc_key_sync"`

	LFOSpeed               byte    `json:"lfo_speed" yaml:"lfo_speed"`
	LFODelay               byte    `json:"lfo_delay" yaml:"lfo_delay"`
	LFOPitchModDepth       byte    `json:"lfo_pitch_mod_depth" yaml:"lfo_pitch_mod_depth"`
	LFOAmpModDepth         byte    `json:"lfo_amp_mod_depth" yaml:"lfo_amp_mod_depth"`
	LFOSync                byte    `json:"lfo_sync" yaml:"lfo_sync"`
	LFOWave                LFOWave `json:"lfo_wave" yaml:"lfo_wave"`
	LFOPitchModSensitivity byte    `json:"lfo_pitch_mod_sensitivity" yaml:"lfo_pitch_mod_sensitivity"`

	Transpose byte `json:"transpose" yaml:"transpose"` // 0..48, 24 is middle C
	Name      Name `json:"name" yaml:"name"`
}

// Op returns operator n using display numbering (1..6). It panics for any
// other n.
func (v *Voice) Op(n int) *Operator {
	if n < 1 || n > NumOperators {
		panic(fmt.Sprintf("dx7: operator %d out of range", n))
	}
	return &v.Operators[NumOperators-n]
}

// Curve is a keyboard level scaling curve.
type Curve byte

const (
	CurveNegLin Curve = iota
	CurveNegExp
	CurvePosExp
	CurvePosLin
)

var curveNames = [...]string{"-LIN", "-EXP", "+EXP", "+LIN"}

func (c Curve) Valid() bool { return c <= MaxCurve }

func (c Curve) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Curve(%d)", byte(c))
	}
	return curveNames[c]
}

// LFOWave is the LFO waveform.
type LFOWave byte

const (
	WaveTriangle LFOWave = iota
	WaveSawDown
	WaveSawUp
	WaveSquare
	WaveSine
	WaveSampleHold
)

var waveNames = [...]string{"Triangle", "Saw Down", "Saw Up", "Square", "Sine", "Sample & Hold"}

func (w LFOWave) Valid() bool { return w <= MaxLFOWave }

func (w LFOWave) String() string {
	if !w.Valid() {
		return fmt.Sprintf("LFOWave(%d)", byte(w))
	}
	return waveNames[w]
}

// OscillatorMode selects ratio or fixed frequency.
type OscillatorMode byte

const (
	ModeRatio OscillatorMode = 0
	ModeFixed OscillatorMode = 1
)

func (m OscillatorMode) Valid() bool { return m <= MaxOscMode }

func (m OscillatorMode) String() string {
	switch m {
	case ModeRatio:
		return "Frequency (Ratio)"
	case ModeFixed:
		return "Fixed Frequency (Hz)"
	default:
		return fmt.Sprintf("OscillatorMode(%d)", byte(m))
	}
}

// Short returns the mode name used in the compact operator table.
func (m OscillatorMode) Short() string {
	switch m {
	case ModeRatio:
		return "Freq. Ratio"
	case ModeFixed:
		return "Fixed Freq."
	default:
		return fmt.Sprintf("mode %d", byte(m))
	}
}
