package render

import (
	"strings"

	"github.com/fjl/dx7dump/dx7"
)

// OutOfRange replaces enumerated values that have no name.
const OutOfRange = "*out of range*"

// FileView is the decoded content of a dump file, prepared for display and
// export. Operators are listed in display order 1..6.
type FileView struct {
	File        string      `json:"file" yaml:"file"`
	Shape       string      `json:"shape" yaml:"shape"`
	Channel     *int        `json:"channel,omitempty" yaml:"channel,omitempty"`
	FixNeeded   bool        `json:"fixNeeded" yaml:"fixNeeded"`
	Diagnostics []string    `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Duplicates  []string    `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Voices      []VoiceView `json:"voices" yaml:"voices"`
}

type VoiceView struct {
	Number        int            `json:"number" yaml:"number"`
	Name          string         `json:"name" yaml:"name"`
	NameHex       string         `json:"nameHex" yaml:"nameHex"`
	Algorithm     int            `json:"algorithm" yaml:"algorithm"`
	Topology      string         `json:"topology,omitempty" yaml:"topology,omitempty"`
	Feedback      int            `json:"feedback" yaml:"feedback"`
	LFO           LFOView        `json:"lfo" yaml:"lfo"`
	OscKeySync    string         `json:"oscKeySync" yaml:"oscKeySync"`
	PitchEG       EGView         `json:"pitchEG" yaml:"pitchEG"`
	Transpose     int            `json:"transpose" yaml:"transpose"`
	TransposeNote string         `json:"transposeNote" yaml:"transposeNote"`
	Operators     []OperatorView `json:"operators" yaml:"operators"`
	OutOfRange    []string       `json:"outOfRange,omitempty" yaml:"outOfRange,omitempty"`

	// Unpacked voice data followed by its single voice checksum.
	Data []byte `json:"-" yaml:"-"`

	bad fieldSet
}

type LFOView struct {
	Wave                string `json:"wave" yaml:"wave"`
	Speed               int    `json:"speed" yaml:"speed"`
	Delay               int    `json:"delay" yaml:"delay"`
	PitchModDepth       int    `json:"pitchModDepth" yaml:"pitchModDepth"`
	AmpModDepth         int    `json:"ampModDepth" yaml:"ampModDepth"`
	KeySync             string `json:"keySync" yaml:"keySync"`
	PitchModSensitivity int    `json:"pitchModSensitivity" yaml:"pitchModSensitivity"`
}

type EGView struct {
	Rates  [4]int `json:"rates" yaml:"rates,flow"`
	Levels [4]int `json:"levels" yaml:"levels,flow"`
}

type OperatorView struct {
	Number                 int     `json:"number" yaml:"number"`
	AmpModSensitivity      int     `json:"ampModSensitivity" yaml:"ampModSensitivity"`
	Mode                   string  `json:"mode" yaml:"mode"`
	Fixed                  bool    `json:"fixed" yaml:"fixed"`
	Frequency              float64 `json:"frequency" yaml:"frequency"`
	Detune                 int     `json:"detune" yaml:"detune"`
	EG                     EGView  `json:"eg" yaml:"eg"`
	Breakpoint             string  `json:"breakpoint" yaml:"breakpoint"`
	LeftCurve              string  `json:"leftCurve" yaml:"leftCurve"`
	RightCurve             string  `json:"rightCurve" yaml:"rightCurve"`
	LeftDepth              int     `json:"leftDepth" yaml:"leftDepth"`
	RightDepth             int     `json:"rightDepth" yaml:"rightDepth"`
	RateScale              int     `json:"rateScale" yaml:"rateScale"`
	OutputLevel            int     `json:"outputLevel" yaml:"outputLevel"`
	KeyVelocitySensitivity int     `json:"keyVelocitySensitivity" yaml:"keyVelocitySensitivity"`

	bad fieldSet
}

// fieldSet holds the names of out of range fields as reported by Check.
type fieldSet map[string]bool

func newFieldSet(errs []*dx7.RangeError) fieldSet {
	set := make(fieldSet, len(errs))
	for _, e := range errs {
		set[e.Field] = true
	}
	return set
}

// mark returns a marker to append to a displayed value if any of the named
// fields is out of range.
func (set fieldSet) mark(fields ...string) string {
	for _, f := range fields {
		if set[f] {
			return " " + OutOfRange
		}
	}
	return ""
}

// Mark returns " *out of range*" if any of the named voice fields is out of
// range, and the empty string otherwise.
func (vv VoiceView) Mark(fields ...string) string { return vv.bad.mark(fields...) }

// Mark returns " *out of range*" if any of the named operator fields is out
// of range, and the empty string otherwise.
func (ov OperatorView) Mark(fields ...string) string { return ov.bad.mark(fields...) }

// NewFileView builds the view of f. If patch is between 1 and the number of
// voices in f, only that voice is included.
func NewFileView(name string, f *dx7.File, patch int, unicode bool) *FileView {
	fv := &FileView{
		File:      DisplayName(name),
		Shape:     f.Shape.String(),
		FixNeeded: f.FixNeeded(),
	}
	if f.Framing != nil {
		ch := int(f.Framing.Channel())
		fv.Channel = &ch
		fv.Diagnostics = f.Framing.Diagnostics()
	}
	if f.Bank != nil {
		for _, d := range dx7.FindDuplicates(f.Bank) {
			fv.Duplicates = append(fv.Duplicates, d.String())
		}
	}
	for n := 1; n <= f.NumVoices(); n++ {
		if patch > 0 && patch <= f.NumVoices() && n != patch {
			continue
		}
		v, _ := f.VoiceAt(n)
		fv.Voices = append(fv.Voices, NewVoiceView(n, v, unicode))
	}
	return fv
}

// NewVoiceView builds the view of voice number n.
func NewVoiceView(n int, v *dx7.Voice, unicode bool) VoiceView {
	arrow := "->"
	if unicode {
		arrow = "→"
	}
	vv := VoiceView{
		Number:    n,
		Name:      v.Name.Text(unicode),
		NameHex:   v.Name.Hex(),
		Algorithm: int(v.Algorithm) + 1,
		Feedback:  int(v.Feedback),
		LFO: LFOView{
			Wave:                enumName(v.LFOWave.Valid(), v.LFOWave.String()),
			Speed:               int(v.LFOSpeed),
			Delay:               int(v.LFODelay),
			PitchModDepth:       int(v.LFOPitchModDepth),
			AmpModDepth:         int(v.LFOAmpModDepth),
			KeySync:             onOff(v.LFOSync),
			PitchModSensitivity: int(v.LFOPitchModSensitivity),
		},
		OscKeySync: onOff(v.OscKeySync),
		PitchEG:    newEGView(v.PitchRates, v.PitchLevels),
		Transpose:  v.DisplayTranspose(),
	}
	if top, ok := dx7.AlgorithmTopology(v.Algorithm); ok {
		vv.Topology = top.Format(arrow)
	} else {
		vv.Topology = OutOfRange
	}
	if note, ok := dx7.TransposeNote(v.Transpose); ok {
		vv.TransposeNote = note
	} else {
		vv.TransposeNote = OutOfRange
	}
	for i := 1; i <= dx7.NumOperators; i++ {
		vv.Operators = append(vv.Operators, newOperatorView(i, v.Op(i)))
	}
	errs := v.Check()
	for _, e := range errs {
		vv.OutOfRange = append(vv.OutOfRange, e.Error())
	}
	vv.bad = newFieldSet(errs)
	u := v.Unpack()
	vv.Data = append(u[:], dx7.Checksum(u[:]))
	return vv
}

func newOperatorView(n int, op *dx7.Operator) OperatorView {
	ov := OperatorView{
		Number:                 n,
		AmpModSensitivity:      int(op.AmpModSensitivity),
		Mode:                   enumName(op.OscillatorMode.Valid(), op.OscillatorMode.String()),
		Fixed:                  op.Fixed(),
		Frequency:              op.Frequency(),
		Detune:                 op.DisplayDetune(),
		EG:                     newEGView(op.Rates, op.Levels),
		LeftCurve:              enumName(op.LeftCurve.Valid(), op.LeftCurve.String()),
		RightCurve:             enumName(op.RightCurve.Valid(), op.RightCurve.String()),
		LeftDepth:              int(op.LeftDepth),
		RightDepth:             int(op.RightDepth),
		RateScale:              int(op.RateScale),
		OutputLevel:            int(op.OutputLevel),
		KeyVelocitySensitivity: int(op.KeyVelocitySensitivity),
		bad:                    newFieldSet(op.Check()),
	}
	if note, ok := dx7.BreakpointNote(op.BreakPoint); ok {
		ov.Breakpoint = note
	} else {
		ov.Breakpoint = OutOfRange
	}
	return ov
}

func newEGView(rates, levels [4]byte) EGView {
	var eg EGView
	for i := range rates {
		eg.Rates[i] = int(rates[i])
		eg.Levels[i] = int(levels[i])
	}
	return eg
}

func enumName(valid bool, name string) string {
	if !valid {
		return OutOfRange
	}
	return name
}

func onOff(x byte) string {
	switch x {
	case 0:
		return "Off"
	case 1:
		return "On"
	default:
		return OutOfRange
	}
}

// DisplayName strips a leading "./" from a file name.
func DisplayName(name string) string {
	return strings.TrimPrefix(name, "./")
}
