package supervisor

import (
	"context"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"
)

// Spawner launches a detached process and returns its pid without waiting for
// it.
type Spawner interface {
	Spawn(ctx context.Context, name string, args ...string) (int, error)
}

// Killer forcefully terminates a process.
type Killer interface {
	Kill(pid int) error
}

// ChildrenLister lists the direct children of a process.
type ChildrenLister interface {
	Children(ctx context.Context, pid int) ([]int, error)
}

// ExecSpawner spawns processes with os/exec. Standard streams are attached to
// the null device and the process is put into its own process group, so it
// outlives the caller.
type ExecSpawner struct{}

var _ Spawner = ExecSpawner{}

func (ExecSpawner) Spawn(ctx context.Context, name string, args ...string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}

// SignalKiller sends SIGKILL.
type SignalKiller struct{}

var _ Killer = SignalKiller{}

func (SignalKiller) Kill(pid int) error {
	if err := unix.Kill(pid, unix.SIGKILL); err != nil {
		if errors.Is(err, unix.ESRCH) {
			return errors.Wrapf(ErrNotRunning, "pid %d", pid)
		}
		return errors.Wrapf(err, "kill %d", pid)
	}
	return nil
}

// ProcessTableLister finds children by reading the process table of the
// operating system.
type ProcessTableLister struct{}

var _ ChildrenLister = ProcessTableLister{}

func (ProcessTableLister) Children(ctx context.Context, pid int) ([]int, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil, errors.Wrapf(ErrNotRunning, "pid %d", pid)
		}
		return nil, errors.WithStack(err)
	}
	children, err := proc.ChildrenWithContext(ctx)
	if err != nil {
		// pgrep exits with 1 if nothing matches
		var exitErr *exec.ExitError
		if errors.Is(err, process.ErrorNoChildren) || (errors.As(err, &exitErr) && exitErr.ExitCode() == 1) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	pids := make([]int, 0, len(children))
	for _, child := range children {
		pids = append(pids, int(child.Pid))
	}
	return pids, nil
}
