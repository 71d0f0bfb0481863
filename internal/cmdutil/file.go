package cmdutil

import (
	"io"
	"os"

	"github.com/fjl/dx7dump/dx7"
	"github.com/pkg/errors"
)

// FileContext holds the state of one dump file for a single invocation.
type FileContext struct {
	Path string
	Size int64
	File *dx7.File
}

// Open reads and decodes the dump at path. The size is checked before
// reading, so oversized files are rejected without loading them.
//
// On error, the returned context is still usable for reporting and carries
// the path and size when known.
func Open(path string) (*FileContext, error) {
	ctx := &FileContext{Path: path}
	fd, err := os.Open(path)
	if err != nil {
		return ctx, errors.Wrap(err, "can't open the file")
	}
	defer fd.Close()

	st, err := fd.Stat()
	if err != nil {
		return ctx, errors.Wrap(err, "can't stat the file")
	}
	ctx.Size = st.Size()
	if _, err := dx7.Classify(int(st.Size())); err != nil {
		return ctx, err
	}

	buf := make([]byte, st.Size())
	if _, err := io.ReadFull(fd, buf); err != nil {
		return ctx, errors.Wrap(err, "file read error")
	}
	ctx.File, err = dx7.Decode(buf)
	return ctx, err
}

// Headerless reports whether the file is a bank without sysex framing.
func (c *FileContext) Headerless() bool {
	return c.File != nil && c.File.Shape == dx7.BankRaw
}
