package dx7

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
)

// Sysex framing bytes.
const (
	sysexStart = 0xF0
	sysexEnd   = 0xF7
	yamahaID   = 0x43

	formatBank   = 0x09
	formatSingle = 0x00

	headerSize = 6
)

// Declared byte counts, split in two 7 bit halves.
var (
	bankByteCount   = [2]byte{0x20, 0x00} // 4096
	singleByteCount = [2]byte{0x01, 0x1B} // 155
)

// Shape identifies the kind of dump contained in a file.
type Shape int

const (
	BankSysex Shape = iota + 1
	BankRaw
	SingleSysex
)

func (s Shape) String() string {
	switch s {
	case BankSysex:
		return "bank sysex"
	case BankRaw:
		return "headerless bank"
	case SingleSysex:
		return "single voice sysex"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Framed reports whether dumps of this shape carry sysex framing.
func (s Shape) Framed() bool {
	return s == BankSysex || s == SingleSysex
}

var (
	ErrTooLarge = errors.New("file too big")
	ErrTooSmall = errors.New("file too small")
)

// SizeError is returned for inputs whose length does not match any dump shape.
type SizeError struct {
	Size int
	Err  error // ErrTooLarge or ErrTooSmall
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%v (%d Bytes)", e.Err, e.Size)
}

func (e *SizeError) Unwrap() error { return e.Err }

// Classify determines the dump shape from the input length alone.
func Classify(n int) (Shape, error) {
	switch {
	case n == BankSysexSize:
		return BankSysex, nil
	case n == BankDataSize:
		return BankRaw, nil
	case n == SingleSysexSize:
		return SingleSysex, nil
	case n > BankSysexSize:
		return 0, &SizeError{Size: n, Err: ErrTooLarge}
	default:
		return 0, &SizeError{Size: n, Err: ErrTooSmall}
	}
}

// FramingError is a fatal defect in the sysex envelope.
type FramingError struct {
	Offset int
	What   string
	Want   byte
	Got    byte
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("did not find %s (offset %d: got 0x%02X, want 0x%02X)", e.What, e.Offset, e.Got, e.Want)
}

// Anomaly is a set of recoverable framing defects.
type Anomaly uint8

const (
	BadSubStatus Anomaly = 1 << iota
	BadFormat
	BadByteCount
	BadChecksum
)

// Has reports whether all anomalies in x are set in a.
func (a Anomaly) Has(x Anomaly) bool { return a&x == x }

func (a Anomaly) String() string {
	if a == 0 {
		return "none"
	}
	var names []string
	for _, x := range []struct {
		a    Anomaly
		name string
	}{
		{BadSubStatus, "substatus"},
		{BadFormat, "format"},
		{BadByteCount, "byte count"},
		{BadChecksum, "checksum"},
	} {
		if a.Has(x.a) {
			names = append(names, x.name)
		}
	}
	return strings.Join(names, ", ")
}

// FramingInfo describes the sysex envelope of a dump.
type FramingInfo struct {
	Shape     Shape
	SubStatus byte // sub-status in the high nibble, channel in the low nibble
	Format    byte
	ByteCount [2]byte
	Checksum  byte // as stored
	Computed  byte // over the payload
	Anomalies Anomaly
}

// Channel returns the MIDI channel (0-based) from the sub-status byte.
func (fi *FramingInfo) Channel() byte { return fi.SubStatus & 0x0F }

// OK reports whether no anomalies were found.
func (fi *FramingInfo) OK() bool { return fi.Anomalies == 0 }

// Diagnostics returns one message per anomaly, in the order in which the
// verifier checks them.
func (fi *FramingInfo) Diagnostics() []string {
	var msgs []string
	if fi.Anomalies.Has(BadSubStatus) {
		msgs = append(msgs, fmt.Sprintf("Did not find substatus 0. (substatus=%d)", fi.SubStatus>>4))
	}
	if fi.Anomalies.Has(BadFormat) {
		if fi.Shape == SingleSysex {
			msgs = append(msgs, fmt.Sprintf("Did not find format 0 (1 voice). (format=0x%X)", fi.Format))
		} else {
			msgs = append(msgs, fmt.Sprintf("Did not find format 9 (32 voices). (format=0x%X)", fi.Format))
		}
	}
	if fi.Anomalies.Has(BadByteCount) {
		want := BankDataSize
		if fi.Shape == SingleSysex {
			want = SingleDataSize
		}
		msgs = append(msgs, fmt.Sprintf("WARNING: Declared data byte count is not %d. (sizeMSB=0x%X, sizeLSB=0x%X)",
			want, fi.ByteCount[0], fi.ByteCount[1]))
	}
	if fi.Anomalies.Has(BadChecksum) {
		msgs = append(msgs, fmt.Sprintf("CHECKSUM FAILED: Should have been 0x%X", fi.Computed))
	}
	return msgs
}

// Checksum computes the sysex checksum of a dump payload: the two's
// complement of the sum of all bytes, masked to 7 bits.
func Checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b & 0x7F
	}
	return -sum & 0x7F
}

// Verify checks the sysex envelope of buf, which must have the given framed
// shape. Missing start, manufacturer or end bytes are fatal and reported as
// *FramingError. Other defects are collected in FramingInfo.Anomalies.
func Verify(buf []byte, shape Shape) (*FramingInfo, error) {
	var (
		format    byte
		byteCount [2]byte
		size      int
	)
	switch shape {
	case BankSysex:
		format, byteCount, size = formatBank, bankByteCount, BankSysexSize
	case SingleSysex:
		format, byteCount, size = formatSingle, singleByteCount, SingleSysexSize
	default:
		return nil, fmt.Errorf("can't verify framing of %v", shape)
	}
	if len(buf) != size {
		return nil, fmt.Errorf("bad size %d for %v", len(buf), shape)
	}

	if buf[0] != sysexStart {
		return nil, &FramingError{Offset: 0, What: "sysex start F0", Want: sysexStart, Got: buf[0]}
	}
	if buf[1] != yamahaID {
		return nil, &FramingError{Offset: 1, What: "Yamaha ID 0x43", Want: yamahaID, Got: buf[1]}
	}
	if buf[size-1] != sysexEnd {
		return nil, &FramingError{Offset: size - 1, What: "sysex end F7", Want: sysexEnd, Got: buf[size-1]}
	}

	payload := buf[headerSize : size-2]
	fi := &FramingInfo{
		Shape:     shape,
		SubStatus: buf[2],
		Format:    buf[3],
		ByteCount: [2]byte{buf[4], buf[5]},
		Checksum:  buf[size-2],
		Computed:  Checksum(payload),
	}
	// Only the sub-status nibble is checked, the channel may be anything.
	// Note the parentheses: without them this would test x & 1.
	if (fi.SubStatus & 0xF0) != 0 {
		fi.Anomalies |= BadSubStatus
	}
	if fi.Format != format {
		fi.Anomalies |= BadFormat
	}
	if fi.ByteCount != byteCount {
		fi.Anomalies |= BadByteCount
	}
	if fi.Checksum != fi.Computed {
		fi.Anomalies |= BadChecksum
	}
	return fi, nil
}

// frame builds a canonical sysex message around payload.
func frame(format byte, byteCount [2]byte, channel byte, payload []byte) []byte {
	body := make([]byte, 0, len(payload)+headerSize)
	body = append(body, yamahaID, channel&0x0F, format, byteCount[0], byteCount[1])
	body = append(body, payload...)
	body = append(body, Checksum(payload))
	return midi.SysEx(body)
}
