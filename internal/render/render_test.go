package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/fjl/dx7dump/dx7"
	"gopkg.in/yaml.v3"
)

func decodeInitBank(t *testing.T) *dx7.File {
	t.Helper()
	f, err := dx7.Decode(dx7.InitBank().Sysex(0))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNameListing(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})
	if err := r.File("./bank.syx", decodeInitBank(t), false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != `File: "bank.syx"` {
		t.Errorf("wrong header %q", lines[0])
	}
	for i := 1; i <= dx7.NumVoices; i++ {
		want := fmt.Sprintf("%2d  INIT VOICE  ", i)
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
	if len(lines) != dx7.NumVoices+3 || lines[33] != "" {
		t.Errorf("wrong trailer: %q", lines[33:])
	}
}

func TestNameListingWarned(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Hex: true}).File("bank.syx", decodeInitBank(t), true)
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	want := " 1 |INIT VOICE|  49 4E 49 54 20 56 4F 49 43 45"
	if first != want {
		t.Fatalf("first line = %q, want %q", first, want)
	}
}

func TestCompactNameListing(t *testing.T) {
	tests := []struct {
		opts  Options
		rows  int
		first string
	}{
		{
			Options{Compact: true}, 8,
			" 1 |INIT VOICE|           9 |INIT VOICE|          17 |INIT VOICE|          25 |INIT VOICE| ",
		},
		{
			Options{Compact: true, Hex: true}, 16,
			" 1 |INIT VOICE|  49 4E 49 54 20 56 4F 49 43 45         17 |INIT VOICE|  49 4E 49 54 20 56 4F 49 43 45",
		},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		New(&buf, test.opts).File("bank.syx", decodeInitBank(t), false)
		lines := strings.Split(buf.String(), "\n")
		if lines[1] != test.first {
			t.Errorf("%+v: first row\n got %q\nwant %q", test.opts, lines[1], test.first)
		}
		if len(lines) != test.rows+3 {
			t.Errorf("%+v: %d lines, want %d rows", test.opts, len(lines), test.rows)
		}
	}
}

func expectedOperator(n int) string {
	level := 0
	if n == 1 {
		level = 99
	}
	return fmt.Sprintf(`
Operator: %d
  Amp Mod Sensitivity: 0
  Oscillator Mode: Frequency (Ratio)
  Frequency: 1
  Detune: +0
  Envelope Generator
    Rate 1: 99
    Rate 2: 99
    Rate 3: 99
    Rate 4: 99
    Level 1: 99
    Level 2: 99
    Level 3: 99
    Level 4: 0
  Keyboard Level Scaling
    Breakpoint: C3
    Left Curve: -LIN
    Right Curve: -LIN
    Left Depth: 0
    Right Depth: 0
  Keyboard Rate Scaling: 0
  Output Level: %d
  Key Velocity Sensitivity: 0
`, n, level)
}

func TestLongListing(t *testing.T) {
	want := `File: "bank.syx"
Voice-#: 7
Name: "INIT VOICE"

Algorithm: 1
Feedback: 0
LFO
  Wave: Triangle
  Speed: 35
  Delay: 0
  Pitch Mod Depth: 0
  Amplitude Mod Depth: 0
  Key Sync: On
  Pitch Mod Sensitivity: 3
Oscillator Key Sync: On
Pitch Envelope Generator
  Rate 1: 99
  Rate 2: 99
  Rate 3: 99
  Rate 4: 99
  Level 1: 50
  Level 2: 50
  Level 3: 50
  Level 4: 50
Transpose: 0
`
	for i := 1; i <= dx7.NumOperators; i++ {
		want += expectedOperator(i)
	}

	var buf bytes.Buffer
	if err := New(&buf, Options{Long: true, Patch: 7}).File("bank.syx", decodeInitBank(t), false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != want {
		t.Fatalf("wrong output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestLongListingSeparators(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Long: true}).File("bank.syx", decodeInitBank(t), false)
	out := buf.String()
	if n := strings.Count(out, "Voice-#:"); n != dx7.NumVoices {
		t.Errorf("%d voices rendered", n)
	}
	if n := strings.Count(out, "\n"+voiceDivider); n != dx7.NumVoices-1 {
		t.Errorf("%d dividers", n)
	}
	if !strings.HasSuffix(out, "Key Velocity Sensitivity: 0\n"+voiceSeparator) {
		t.Errorf("output does not end with the voice separator")
	}
}

func TestLongListingHex(t *testing.T) {
	f := decodeInitBank(t)
	var buf bytes.Buffer
	New(&buf, Options{Long: true, Patch: 1, Hex: true}).File("bank.syx", f, false)

	u := f.Bank.Voices[0].Unpack()
	data := append(u[:], dx7.Checksum(u[:]))
	want := fmt.Sprintf("Name: \"INIT VOICE\" |  49 4E 49 54 20 56 4F 49 43 45\n\nVoice Data: %s [last byte = checksum]\n\nAlgorithm: 1\n", hexBytes(data))
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("hex block missing:\n%s", buf.String())
	}
	if len(data) != dx7.UnpackedVoiceSize+1 {
		t.Fatalf("voice data has %d bytes", len(data))
	}
}

func TestCompactTable(t *testing.T) {
	v := dx7.InitVoice()
	v.Op(3).OscillatorMode = dx7.ModeFixed
	v.Op(3).FrequencyCoarse = 1
	v.Op(4).LeftCurve = 7
	v.Op(5).BreakPoint = 120
	// Single voice dumps keep whole bytes, so out of range curves survive.
	f, err := dx7.Decode(v.Sysex(0))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := New(&buf, Options{Long: true, Compact: true, Unicode: true}).File("voice.syx", f, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, line := range []string{
		"Algorithm: 1\n\n2→1 + FB(6)→5→4→3\nFeedback: 0\n",
		"  Rate 1: 99    Level 1: 50\n",
		"Transpose: 0\n\n                       | Operator 1  | Operator 2  | Operator 3  | Operator 4  | Operator 5  | Operator 6  |\n",
		"\n-----------------------+-------------+-------------+-------------+-------------+-------------+-------------+\n",
		"\nOscillator Mode        | Freq. Ratio | Freq. Ratio | Fixed Freq. | Freq. Ratio | Freq. Ratio | Freq. Ratio |\n",
		"\nFrequency              |           1 |           1 |       10 Hz |           1 |           1 |           1 |\n",
		"\nDetune                 |          +0 |          +0 |          +0 |          +0 |          +0 |          +0 |\n",
		"\nEnvelope Generator     |             |             |             |             |             |             |\n",
		"\n  Rate 4 : Level 4     |   99 : 0    |   99 : 0    |   99 : 0    |   99 : 0    |   99 : 0    |   99 : 0    |\n",
		"\n  Breakpoint           |          C3 |          C3 |          C3 |          C3 |         ~~~ |          C3 |\n",
		"\n  Left Curve           |        -LIN |        -LIN |        -LIN |         ~~~ |        -LIN |        -LIN |\n",
		"\nOutput Level           |          99 |           0 |           0 |           0 |           0 |           0 |\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q", line)
		}
	}
	if !strings.HasSuffix(out, "-------------+\n") {
		t.Errorf("table not terminated: %q", out[len(out)-40:])
	}
}

func TestOutOfRangeLong(t *testing.T) {
	v := dx7.InitVoice()
	v.LFOWave = 6
	v.LFOSync = 2
	v.Op(1).RightCurve = 5
	vv := NewVoiceView(1, &v, false)
	if vv.LFO.Wave != OutOfRange || vv.LFO.KeySync != OutOfRange {
		t.Errorf("LFO = %+v", vv.LFO)
	}
	if vv.Operators[0].RightCurve != OutOfRange {
		t.Errorf("right curve = %q", vv.Operators[0].RightCurve)
	}
	if len(vv.OutOfRange) != 3 {
		t.Errorf("out of range list = %v", vv.OutOfRange)
	}
}

func TestOutOfRangeNumbers(t *testing.T) {
	v := dx7.InitVoice()
	v.Algorithm = 40
	v.Transpose = 60
	v.Op(1).OutputLevel = 120
	v.Op(2).Levels[1] = 100
	v.Op(3).Detune = 20
	f, err := dx7.Decode(v.Sysex(0))
	if err != nil {
		t.Fatal(err)
	}

	var long bytes.Buffer
	if err := New(&long, Options{}).File("voice.syx", f, false); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"\nAlgorithm: 41 *out of range*\n",
		"\nTranspose: 36 *out of range*\n",
		"\n  Output Level: 120 *out of range*\n",
		"\n    Level 2: 100 *out of range*\n",
		"\n  Detune: +13 *out of range*\n",
		"\nFeedback: 0\n",
		"\n  Output Level: 0\n",
	} {
		if !strings.Contains(long.String(), line) {
			t.Errorf("long listing: missing %q", line)
		}
	}
	if n := strings.Count(long.String(), OutOfRange); n != 5 {
		t.Errorf("long listing has %d markers, want 5:\n%s", n, long.String())
	}

	var compact bytes.Buffer
	if err := New(&compact, Options{Long: true, Compact: true}).File("voice.syx", f, false); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"\nAlgorithm: 41 *out of range*\n\n*out of range*\n",
		"\nTranspose: 36 *out of range*\n",
		"\nOutput Level           |         ~~~ |           0 |",
		"\n  Rate 2 : Level 2     |   99 : 99   |   99 : ~~~  |   99 : 99   |",
		"\nDetune                 |          +0 |          +0 |         ~~~ |",
	} {
		if !strings.Contains(compact.String(), line) {
			t.Errorf("compact table: missing %q", line)
		}
	}
}

func TestDuplicates(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{}).Duplicates([]dx7.Duplicate{{A: 0, B: 4}, {A: 2, B: 31}})
	want := "Found duplicate: 1 = 5\nFound duplicate: 3 = 32\n\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestSingleVoiceRendersFully(t *testing.T) {
	v := dx7.InitVoice()
	f, err := dx7.Decode(v.Sysex(0))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	New(&buf, Options{}).File("voice.syx", f, false)
	out := buf.String()
	if !strings.HasPrefix(out, "File: \"voice.syx\"\nVoice-#: 1\nName: \"INIT VOICE\"\n") {
		t.Errorf("wrong start:\n%s", out)
	}
	if strings.Count(out, "Operator: ") != dx7.NumOperators {
		t.Errorf("operators missing:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	f := decodeInitBank(t)
	fv := NewFileView("./bank.syx", f, 3, false)
	if len(fv.Voices) != 1 || fv.Voices[0].Number != 3 {
		t.Fatalf("patch selection: %d voices", len(fv.Voices))
	}
	if len(fv.Duplicates) != 496 {
		t.Errorf("%d duplicates", len(fv.Duplicates))
	}

	var jbuf bytes.Buffer
	if err := Export(&jbuf, fv, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var jv FileView
	if err := json.Unmarshal(jbuf.Bytes(), &jv); err != nil {
		t.Fatal(err)
	}
	if jv.File != "bank.syx" || jv.Voices[0].Operators[0].OutputLevel != 99 {
		t.Errorf("JSON export: %+v", jv)
	}

	var ybuf bytes.Buffer
	if err := Export(&ybuf, fv, FormatYAML); err != nil {
		t.Fatal(err)
	}
	var yv FileView
	if err := yaml.Unmarshal(ybuf.Bytes(), &yv); err != nil {
		t.Fatal(err)
	}
	if yv.Voices[0].Topology != "2->1 + FB(6)->5->4->3" || yv.Voices[0].PitchEG.Levels[0] != 50 {
		t.Errorf("YAML export: %+v", yv.Voices[0])
	}
	if !strings.Contains(ybuf.String(), "rates: [99, 99, 99, 99]") {
		t.Errorf("EG not in flow style:\n%s", ybuf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "text", "json", "yaml"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}
