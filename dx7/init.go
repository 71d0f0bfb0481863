package dx7

// InitVoice returns the synth's "INIT VOICE": algorithm 1, only operator 1
// audible, all envelopes at full level.
func InitVoice() Voice {
	v := Voice{
		PitchRates:             [4]byte{99, 99, 99, 99},
		PitchLevels:            [4]byte{50, 50, 50, 50},
		OscKeySync:             1,
		LFOSpeed:               35,
		LFOSync:                1,
		LFOPitchModSensitivity: 3,
		Transpose:              24,
		Name:                   NewName("INIT VOICE"),
	}
	for i := range v.Operators {
		v.Operators[i] = Operator{
			Rates:           [4]byte{99, 99, 99, 99},
			Levels:          [4]byte{99, 99, 99, 0},
			BreakPoint:      39,
			Detune:          7,
			FrequencyCoarse: 1,
		}
	}
	v.Op(1).OutputLevel = 99
	return v
}

// InitBank returns a bank of 32 init voices.
func InitBank() *Bank {
	var voices [NumVoices]Voice
	for i := range voices {
		voices[i] = InitVoice()
	}
	return NewBank(voices)
}
