package render

import (
	"fmt"
	"strconv"

	"github.com/fjl/dx7dump/dx7"
)

// tableOutOfRange marks cells whose value is out of range or has no name.
// It is short enough to keep the table aligned.
const tableOutOfRange = "~~~"

type tableRow struct {
	Separator bool
	Label     string
	Cells     []string // one per operator, each 12 characters wide
}

var tableSeparator = tableRow{Separator: true}

// operatorTable builds the compact operator table, one column per operator
// in display order.
func operatorTable(v *dx7.Voice) []tableRow {
	var ops [dx7.NumOperators]*dx7.Operator
	for i := range ops {
		ops[i] = v.Op(i + 1)
	}
	row := func(label string, cell func(op *dx7.Operator) string) tableRow {
		r := tableRow{Label: label, Cells: make([]string, len(ops))}
		for i, op := range ops {
			r.Cells[i] = cell(op)
		}
		return r
	}
	num := func(label string, limit byte, field func(op *dx7.Operator) byte) tableRow {
		return row(label, func(op *dx7.Operator) string {
			v := field(op)
			return textCell(dx7.InRange(v, limit), strconv.Itoa(int(v)))
		})
	}
	eg := func(stage int) tableRow {
		return row(fmt.Sprintf("  Rate %d : Level %d", stage+1, stage+1), func(op *dx7.Operator) string {
			return fmt.Sprintf(" %4s : %-4s", levelText(op.Rates[stage]), levelText(op.Levels[stage]))
		})
	}

	return []tableRow{
		tableSeparator,
		num("Amplitude Mod Sens", dx7.MaxAmpModSens, func(op *dx7.Operator) byte { return op.AmpModSensitivity }),
		row("Oscillator Mode", func(op *dx7.Operator) string {
			return textCell(op.OscillatorMode.Valid(), op.OscillatorMode.Short())
		}),
		row("Frequency", frequencyCell),
		row("Detune", func(op *dx7.Operator) string {
			return textCell(dx7.InRange(op.Detune, dx7.MaxDetune), fmt.Sprintf("%+d", op.DisplayDetune()))
		}),
		tableSeparator,
		{Label: "Envelope Generator"},
		eg(0), eg(1), eg(2), eg(3),
		tableSeparator,
		{Label: "Keyboard Level Scaling"},
		row("  Breakpoint", func(op *dx7.Operator) string {
			note, ok := dx7.BreakpointNote(op.BreakPoint)
			return textCell(ok, note)
		}),
		row("  Left Curve", func(op *dx7.Operator) string {
			return textCell(op.LeftCurve.Valid(), op.LeftCurve.String())
		}),
		row("  Right Curve", func(op *dx7.Operator) string {
			return textCell(op.RightCurve.Valid(), op.RightCurve.String())
		}),
		num("  Left Depth", dx7.MaxLevel, func(op *dx7.Operator) byte { return op.LeftDepth }),
		num("  Right Depth", dx7.MaxLevel, func(op *dx7.Operator) byte { return op.RightDepth }),
		tableSeparator,
		num("Keyboard Rate Scaling", dx7.MaxRateScale, func(op *dx7.Operator) byte { return op.RateScale }),
		num("Output Level", dx7.MaxLevel, func(op *dx7.Operator) byte { return op.OutputLevel }),
		num("Key Velocity Sens", dx7.MaxKeyVelSens, func(op *dx7.Operator) byte { return op.KeyVelocitySensitivity }),
		tableSeparator,
	}
}

func textCell(valid bool, s string) string {
	if !valid {
		s = tableOutOfRange
	}
	return fmt.Sprintf(" %11s", s)
}

// levelText formats an EG rate or level for the table.
func levelText(v byte) string {
	if !dx7.InRange(v, dx7.MaxLevel) {
		return tableOutOfRange
	}
	return strconv.Itoa(int(v))
}

func frequencyCell(op *dx7.Operator) string {
	if !dx7.InRange(op.FrequencyCoarse, dx7.MaxCoarse) || !dx7.InRange(op.FrequencyFine, dx7.MaxLevel) {
		return textCell(false, "")
	}
	if op.Fixed() {
		return fmt.Sprintf("%9.6g Hz", op.Frequency())
	}
	return fmt.Sprintf(" %11.6g", op.Frequency())
}
