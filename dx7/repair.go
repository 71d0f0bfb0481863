package dx7

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// BackupSuffix is appended to the original file name by Repair.
const BackupSuffix = ".ORIG"

var errNotBank = errors.New("only voice banks can be repaired")

// RepairOptions configures Repair.
type RepairOptions struct {
	NoBackup bool // overwrite the file without renaming it to <path>.ORIG first
}

// Repair rewrites the bank dump in f to path with canonical framing and a
// recomputed checksum. Unless opts.NoBackup is set, the existing file is first
// renamed to path+BackupSuffix. Voice data is written exactly as it was read.
func Repair(path string, f *File, opts RepairOptions) error {
	if f.Bank == nil {
		return errNotBank
	}
	out := f.Bank.Sysex(0)

	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if !opts.NoBackup {
		if err := os.Rename(path, path+BackupSuffix); err != nil {
			return errors.Wrap(err, "file could not be renamed for backup, fix aborted")
		}
	}

	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, "can't open %s for writing", path)
	}
	n, err := fd.Write(out)
	if err == nil && n < len(out) {
		err = io.ErrShortWrite
	}
	if cerr := fd.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "error writing to %s", path)
	}
	return nil
}
