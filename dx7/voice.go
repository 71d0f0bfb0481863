package dx7

// Packed operator layout (17 bytes), bit 0 is the LSB:
//
//	   | 7 | 6 | 5 | 4 | 3 | 2 | 1 | 0 |
//	 0 |            EG R1..R4          |  bytes 0..3
//	 4 |            EG L1..L4          |  bytes 4..7
//	 8 |          break point          |
//	 9 |          left depth           |
//	10 |          right depth          |
//	11 | -   -   -   - |  RC   |  LC   |
//	12 | - |    detune     |    RS     |
//	13 | -   -   - |    KVS    |  AMS  |
//	14 |          output level         |
//	15 | -   - |      coarse       | M |
//	16 |             fine              |
//
// The packed voice trailer follows the six operators:
//
//	102..109  pitch EG R1..R4, L1..L4
//	110       algorithm (bits 4..0)
//	111       oscillator key sync (bit 3), feedback (bits 2..0)
//	112..115  LFO speed, delay, pitch mod depth, amp mod depth
//	116       LFO pitch mod sensitivity (bits 6..4), wave (bits 3..1), sync (bit 0)
//	117       transpose
//	118..127  name
//
// Unused bits may carry noise and are ignored when decoding.

const (
	packedTrailer   = NumOperators * PackedOperatorSize   // 102
	unpackedTrailer = NumOperators * UnpackedOperatorSize // 126
)

// DecodePackedVoice decodes a 128 byte voice record from a bank dump.
// Out of range values are kept as stored. It panics if p holds fewer than
// PackedVoiceSize bytes.
func DecodePackedVoice(p []byte) Voice {
	var v Voice
	_ = p[PackedVoiceSize-1]
	for i := range v.Operators {
		v.Operators[i] = decodePackedOperator(p[i*PackedOperatorSize:])
	}
	t := p[packedTrailer:]
	copy(v.PitchRates[:], t[0:4])
	copy(v.PitchLevels[:], t[4:8])
	v.Algorithm = t[8] & 0x1F
	v.Feedback = t[9] & 0x07
	v.OscKeySync = t[9] >> 3 & 0x01
	v.LFOSpeed = t[10]
	v.LFODelay = t[11]
	v.LFOPitchModDepth = t[12]
	v.LFOAmpModDepth = t[13]
	v.LFOSync = t[14] & 0x01
	v.LFOWave = LFOWave(t[14] >> 1 & 0x07)
	// Some descriptions of the format list four bits for the pitch mod
	// sensitivity. The synth only uses three.
	v.LFOPitchModSensitivity = t[14] >> 4 & 0x07
	v.Transpose = t[15]
	copy(v.Name[:], t[16:16+NameLength])
	return v
}

func decodePackedOperator(b []byte) Operator {
	var op Operator
	copy(op.Rates[:], b[0:4])
	copy(op.Levels[:], b[4:8])
	op.BreakPoint = b[8]
	op.LeftDepth = b[9]
	op.RightDepth = b[10]
	op.LeftCurve = Curve(b[11] & 0x03)
	op.RightCurve = Curve(b[11] >> 2 & 0x03)
	op.RateScale = b[12] & 0x07
	op.Detune = b[12] >> 3 & 0x0F
	op.AmpModSensitivity = b[13] & 0x03
	op.KeyVelocitySensitivity = b[13] >> 2 & 0x07
	op.OutputLevel = b[14]
	op.OscillatorMode = OscillatorMode(b[15] & 0x01)
	op.FrequencyCoarse = b[15] >> 1 & 0x1F
	op.FrequencyFine = b[16]
	return op
}

// Pack encodes the voice in the 128 byte bank layout. Values wider than
// their bitfield are truncated.
func (v *Voice) Pack() [PackedVoiceSize]byte {
	var p [PackedVoiceSize]byte
	for i := range v.Operators {
		v.Operators[i].pack(p[i*PackedOperatorSize:])
	}
	t := p[packedTrailer:]
	copy(t[0:4], v.PitchRates[:])
	copy(t[4:8], v.PitchLevels[:])
	t[8] = v.Algorithm & 0x1F
	t[9] = v.Feedback&0x07 | (v.OscKeySync&0x01)<<3
	t[10] = v.LFOSpeed
	t[11] = v.LFODelay
	t[12] = v.LFOPitchModDepth
	t[13] = v.LFOAmpModDepth
	t[14] = v.LFOSync&0x01 | (byte(v.LFOWave)&0x07)<<1 | (v.LFOPitchModSensitivity&0x07)<<4
	t[15] = v.Transpose
	copy(t[16:], v.Name[:])
	return p
}

func (op *Operator) pack(b []byte) {
	copy(b[0:4], op.Rates[:])
	copy(b[4:8], op.Levels[:])
	b[8] = op.BreakPoint
	b[9] = op.LeftDepth
	b[10] = op.RightDepth
	b[11] = byte(op.LeftCurve)&0x03 | (byte(op.RightCurve)&0x03)<<2
	b[12] = op.RateScale&0x07 | (op.Detune&0x0F)<<3
	b[13] = op.AmpModSensitivity&0x03 | (op.KeyVelocitySensitivity&0x07)<<2
	b[14] = op.OutputLevel
	b[15] = byte(op.OscillatorMode)&0x01 | (op.FrequencyCoarse&0x1F)<<1
	b[16] = op.FrequencyFine
}

// DecodeUnpackedVoice decodes a 155 byte voice record as found in single
// voice dumps. Every parameter occupies a whole byte. It panics if u holds
// fewer than UnpackedVoiceSize bytes.
func DecodeUnpackedVoice(u []byte) Voice {
	var v Voice
	_ = u[UnpackedVoiceSize-1]
	for i := range v.Operators {
		v.Operators[i] = decodeUnpackedOperator(u[i*UnpackedOperatorSize:])
	}
	t := u[unpackedTrailer:]
	copy(v.PitchRates[:], t[0:4])
	copy(v.PitchLevels[:], t[4:8])
	v.Algorithm = t[8]
	v.Feedback = t[9]
	v.OscKeySync = t[10]
	v.LFOSpeed = t[11]
	v.LFODelay = t[12]
	v.LFOPitchModDepth = t[13]
	v.LFOAmpModDepth = t[14]
	v.LFOSync = t[15]
	v.LFOWave = LFOWave(t[16])
	v.LFOPitchModSensitivity = t[17]
	v.Transpose = t[18]
	copy(v.Name[:], t[19:19+NameLength])
	return v
}

func decodeUnpackedOperator(b []byte) Operator {
	var op Operator
	copy(op.Rates[:], b[0:4])
	copy(op.Levels[:], b[4:8])
	op.BreakPoint = b[8]
	op.LeftDepth = b[9]
	op.RightDepth = b[10]
	op.LeftCurve = Curve(b[11])
	op.RightCurve = Curve(b[12])
	op.RateScale = b[13]
	op.AmpModSensitivity = b[14]
	op.KeyVelocitySensitivity = b[15]
	op.OutputLevel = b[16]
	op.OscillatorMode = OscillatorMode(b[17])
	op.FrequencyCoarse = b[18]
	op.FrequencyFine = b[19]
	op.Detune = b[20]
	return op
}

// Unpack encodes the voice in the 155 byte single voice layout.
func (v *Voice) Unpack() [UnpackedVoiceSize]byte {
	var u [UnpackedVoiceSize]byte
	for i := range v.Operators {
		v.Operators[i].unpack(u[i*UnpackedOperatorSize:])
	}
	t := u[unpackedTrailer:]
	copy(t[0:4], v.PitchRates[:])
	copy(t[4:8], v.PitchLevels[:])
	t[8] = v.Algorithm
	t[9] = v.Feedback
	t[10] = v.OscKeySync
	t[11] = v.LFOSpeed
	t[12] = v.LFODelay
	t[13] = v.LFOPitchModDepth
	t[14] = v.LFOAmpModDepth
	t[15] = v.LFOSync
	t[16] = byte(v.LFOWave)
	t[17] = v.LFOPitchModSensitivity
	t[18] = v.Transpose
	copy(t[19:], v.Name[:])
	return u
}

func (op *Operator) unpack(b []byte) {
	copy(b[0:4], op.Rates[:])
	copy(b[4:8], op.Levels[:])
	b[8] = op.BreakPoint
	b[9] = op.LeftDepth
	b[10] = op.RightDepth
	b[11] = byte(op.LeftCurve)
	b[12] = byte(op.RightCurve)
	b[13] = op.RateScale
	b[14] = op.AmpModSensitivity
	b[15] = op.KeyVelocitySensitivity
	b[16] = op.OutputLevel
	b[17] = byte(op.OscillatorMode)
	b[18] = op.FrequencyCoarse
	b[19] = op.FrequencyFine
	b[20] = op.Detune
}

// UnpackVoice converts a packed 128 byte voice to the 155 byte layout.
func UnpackVoice(packed []byte) [UnpackedVoiceSize]byte {
	v := DecodePackedVoice(packed)
	return v.Unpack()
}

// PackVoice converts a 155 byte voice to the packed 128 byte layout.
func PackVoice(unpacked []byte) [PackedVoiceSize]byte {
	v := DecodeUnpackedVoice(unpacked)
	return v.Pack()
}
