package dx7

import "fmt"

// RangeError names a parameter whose stored value is out of range.
type RangeError struct {
	Field string
	Value byte
	Max   byte
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s = %d out of range (max %d)", e.Field, e.Value, e.Max)
}

// InRange reports whether v is at most limit.
func InRange(v, limit byte) bool { return v <= limit }

type rangeChecker struct {
	prefix string
	errs   []*RangeError
}

func (c *rangeChecker) check(field string, v, limit byte) {
	if v > limit {
		c.errs = append(c.errs, &RangeError{Field: c.prefix + field, Value: v, Max: limit})
	}
}

func (c *rangeChecker) checkEG(field string, vals [4]byte) {
	for i, v := range vals {
		c.check(fmt.Sprintf("%s %d", field, i+1), v, MaxLevel)
	}
}

// Check returns the operator parameters that are out of range.
func (op *Operator) Check() []*RangeError {
	c := new(rangeChecker)
	op.check(c)
	return c.errs
}

func (op *Operator) check(c *rangeChecker) {
	c.checkEG("EG rate", op.Rates)
	c.checkEG("EG level", op.Levels)
	c.check("break point", op.BreakPoint, MaxLevel)
	c.check("left depth", op.LeftDepth, MaxLevel)
	c.check("right depth", op.RightDepth, MaxLevel)
	c.check("left curve", byte(op.LeftCurve), MaxCurve)
	c.check("right curve", byte(op.RightCurve), MaxCurve)
	c.check("rate scale", op.RateScale, MaxRateScale)
	c.check("detune", op.Detune, MaxDetune)
	c.check("amp mod sensitivity", op.AmpModSensitivity, MaxAmpModSens)
	c.check("key velocity sensitivity", op.KeyVelocitySensitivity, MaxKeyVelSens)
	c.check("output level", op.OutputLevel, MaxLevel)
	c.check("oscillator mode", byte(op.OscillatorMode), MaxOscMode)
	c.check("frequency coarse", op.FrequencyCoarse, MaxCoarse)
	c.check("frequency fine", op.FrequencyFine, MaxLevel)
}

// Check returns all parameters of the voice that are out of range.
// Operator fields are prefixed with "op N " using display numbering.
func (v *Voice) Check() []*RangeError {
	c := new(rangeChecker)
	for n := 1; n <= NumOperators; n++ {
		c.prefix = fmt.Sprintf("op %d ", n)
		v.Op(n).check(c)
	}
	c.prefix = ""
	c.checkEG("pitch EG rate", v.PitchRates)
	c.checkEG("pitch EG level", v.PitchLevels)
	c.check("algorithm", v.Algorithm, MaxAlgorithm)
	c.check("feedback", v.Feedback, MaxFeedback)
	c.check("oscillator key sync", v.OscKeySync, MaxSwitch)
	c.check("LFO speed", v.LFOSpeed, MaxLevel)
	c.check("LFO delay", v.LFODelay, MaxLevel)
	c.check("LFO pitch mod depth", v.LFOPitchModDepth, MaxLevel)
	c.check("LFO amp mod depth", v.LFOAmpModDepth, MaxLevel)
	c.check("LFO sync", v.LFOSync, MaxSwitch)
	c.check("LFO wave", byte(v.LFOWave), MaxLFOWave)
	c.check("LFO pitch mod sensitivity", v.LFOPitchModSensitivity, MaxPitchModSens)
	c.check("transpose", v.Transpose, MaxTranspose)
	return c.errs
}
