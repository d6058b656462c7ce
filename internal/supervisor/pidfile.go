package supervisor

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kakao/chward/pkg/util/fputil"
)

// PIDFile is the path of a file recording the pid of a running node.
type PIDFile string

// Read returns the recorded pid. It returns an error wrapping ErrNotRunning
// if the file does not exist.
func (f PIDFile) Read() (int, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, errors.Wrapf(ErrNotRunning, "no pid file %s", f)
		}
		return 0, errors.WithStack(err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid < 1 {
		return 0, errors.Errorf("malformed pid file %s: %q", f, data)
	}
	return pid, nil
}

func (f PIDFile) Write(pid int) error {
	return fputil.WriteFileAtomic(string(f), []byte(strconv.Itoa(pid)), 0o644)
}

// Remove deletes the pid file. A missing file is not an error.
func (f PIDFile) Remove() error {
	if err := os.Remove(string(f)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.WithStack(err)
	}
	return nil
}
