package dx7

import "fmt"

// Bank is a set of 32 voices. It keeps the payload bytes it was decoded
// from, including any noise in unused bits, so that rewriting the framing
// never alters voice data.
type Bank struct {
	Voices  [NumVoices]Voice
	payload [BankDataSize]byte
}

// DecodeBank decodes a 4096 byte bank payload.
func DecodeBank(payload []byte) *Bank {
	if len(payload) != BankDataSize {
		panic(fmt.Sprintf("dx7: bank payload is %d bytes, want %d", len(payload), BankDataSize))
	}
	b := new(Bank)
	copy(b.payload[:], payload)
	for i := range b.Voices {
		b.Voices[i] = DecodePackedVoice(b.Packed(i))
	}
	return b
}

// NewBank packs voices into a bank.
func NewBank(voices [NumVoices]Voice) *Bank {
	b := &Bank{Voices: voices}
	for i := range b.Voices {
		p := b.Voices[i].Pack()
		copy(b.payload[i*PackedVoiceSize:], p[:])
	}
	return b
}

// Packed returns the stored 128 byte record of voice i (0-based).
// The returned slice must not be modified.
func (b *Bank) Packed(i int) []byte {
	off := i * PackedVoiceSize
	return b.payload[off : off+PackedVoiceSize : off+PackedVoiceSize]
}

// Payload returns a copy of the 4096 byte bank payload.
func (b *Bank) Payload() []byte {
	return append([]byte(nil), b.payload[:]...)
}

// Sysex returns the bank as a canonical 4104 byte bulk dump on the given
// channel, with a freshly computed checksum.
func (b *Bank) Sysex(channel byte) []byte {
	return frame(formatBank, bankByteCount, channel, b.payload[:])
}

// Sysex returns the voice as a canonical 163 byte single voice dump.
func (v *Voice) Sysex(channel byte) []byte {
	u := v.Unpack()
	return frame(formatSingle, singleByteCount, channel, u[:])
}

// File is a decoded dump. Exactly one of Bank and Voice is set.
type File struct {
	Shape   Shape
	Bank    *Bank
	Voice   *Voice
	Framing *FramingInfo // nil for headerless banks
}

// Decode classifies buf, verifies its framing and decodes the voice data.
// Errors are returned only for unusable input: wrong size (*SizeError) or
// a broken sysex envelope (*FramingError).
func Decode(buf []byte) (*File, error) {
	shape, err := Classify(len(buf))
	if err != nil {
		return nil, err
	}
	f := &File{Shape: shape}
	switch shape {
	case BankRaw:
		// Headerless data has no checksum to verify.
		f.Bank = DecodeBank(buf)
	case BankSysex:
		if f.Framing, err = Verify(buf, shape); err != nil {
			return nil, err
		}
		f.Bank = DecodeBank(buf[headerSize : headerSize+BankDataSize])
	case SingleSysex:
		if f.Framing, err = Verify(buf, shape); err != nil {
			return nil, err
		}
		v := DecodeUnpackedVoice(buf[headerSize : headerSize+SingleDataSize])
		f.Voice = &v
	}
	return f, nil
}

// FixNeeded reports whether the file is a bank whose framing should be
// rewritten. Headerless banks always need it.
func (f *File) FixNeeded() bool {
	if f.Bank == nil {
		return false
	}
	return f.Framing == nil || !f.Framing.OK()
}

// NumVoices returns the number of voices in the file.
func (f *File) NumVoices() int {
	if f.Bank != nil {
		return NumVoices
	}
	return 1
}

// VoiceAt returns voice n (1-based).
func (f *File) VoiceAt(n int) (*Voice, error) {
	if n < 1 || n > f.NumVoices() {
		return nil, fmt.Errorf("voice %d out of range 1..%d", n, f.NumVoices())
	}
	if f.Bank != nil {
		return &f.Bank.Voices[n-1], nil
	}
	return f.Voice, nil
}
