package process

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Process runs a short-lived program and delivers its stdout and stderr line
// by line through channels.
type Process struct {
	cmd *exec.Cmd

	wg     sync.WaitGroup
	cancel context.CancelFunc
	done   <-chan struct{}
	stdout *reader
	stderr *reader
}

// New returns the Process to execute a program specified by the arguments.
// The program is killed when ctx is done.
func New(ctx context.Context, name string, arg ...string) (*Process, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, name, arg...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		_ = stdout.Close()
		return nil, err
	}

	return &Process{
		cmd:    cmd,
		cancel: cancel,
		done:   ctx.Done(),
		stdout: &reader{reader: stdout, ch: make(chan string)},
		stderr: &reader{reader: stderr, ch: make(chan string)},
	}, nil
}

// Start starts the process without waiting for its completion. If it
// succeeds, callers must drain Stdout and Stderr and call Wait.
func (p *Process) Start() error {
	if err := p.cmd.Start(); err != nil {
		p.cancel()
		_ = p.stdout.reader.Close()
		_ = p.stderr.reader.Close()
		return err
	}

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		p.stdout.read(p.done)
	}()
	go func() {
		defer p.wg.Done()
		p.stderr.read(p.done)
	}()
	return nil
}

// Stdout returns a channel for stdout lines. It is closed at the end of the
// output.
func (p *Process) Stdout() <-chan string {
	return p.stdout.ch
}

// Stderr returns a channel for stderr lines.
func (p *Process) Stderr() <-chan string {
	return p.stderr.ch
}

// String returns a description of the process. Do not depend on its content.
func (p *Process) String() string {
	return p.cmd.String()
}

// Stop kills the process.
func (p *Process) Stop() {
	p.cancel()
}

// Wait waits for the process to exit and releases its resources.
func (p *Process) Wait() error {
	p.wg.Wait()
	err := p.cmd.Wait()
	p.cancel()
	return err
}

// Output runs a program to completion and returns its stdout lines. If the
// program fails, the returned error carries its stderr.
func Output(ctx context.Context, name string, arg ...string) ([]string, error) {
	p, err := New(ctx, name, arg...)
	if err != nil {
		return nil, err
	}
	if err := p.Start(); err != nil {
		return nil, errors.WithMessage(err, p.String())
	}

	var stderr []string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for line := range p.Stderr() {
			stderr = append(stderr, line)
		}
	}()
	var stdout []string
	for line := range p.Stdout() {
		stdout = append(stdout, line)
	}
	wg.Wait()

	if err := p.Wait(); err != nil {
		if len(stderr) > 0 {
			return stdout, errors.Wrapf(err, "%s: %s", p, strings.Join(stderr, "; "))
		}
		return stdout, errors.Wrap(err, p.String())
	}
	return stdout, nil
}

type reader struct {
	reader io.ReadCloser
	ch     chan string
}

func (rc *reader) read(done <-chan struct{}) {
	defer close(rc.ch)
	scanner := bufio.NewScanner(rc.reader)
	for scanner.Scan() {
		select {
		case rc.ch <- scanner.Text():
		case <-done:
			return
		}
	}
}
