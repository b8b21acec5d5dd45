package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.run(exec.CommandContext(ctx, name, args...), name)
}

// ExecuteInDir runs an external command in a specific working directory
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return e.run(cmd, name)
}

// Stream starts an external command and exposes its stdout as a reader
func (e *implExecutor) Stream(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("command '%s' stdout pipe: %w", name, err)
	}

	p := &process{cmd: cmd, name: name, stdout: stdout}
	cmd.Stderr = &p.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command '%s' start: %w", name, err)
	}

	return p, nil
}

func (e *implExecutor) run(cmd *exec.Cmd, name string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(name, err, stderr.String())
	}

	return stdout.String(), nil
}

type process struct {
	cmd    *exec.Cmd
	name   string
	stdout io.Reader
	stderr bytes.Buffer
}

func (p *process) Stdout() io.Reader {
	return p.stdout
}

func (p *process) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return commandError(p.name, err, p.stderr.String())
	}
	return nil
}

func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// commandError includes stderr in the error message for debugging
func commandError(name string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderr)
	}
	return fmt.Errorf("command '%s' failed: %w", name, err)
}

// FirstAvailable returns the first candidate binary that answers probeArg
// (e.g. "-version"). All failures are joined when none responds.
func FirstAvailable(ctx context.Context, exec Executor, probeArg string, candidates ...string) (string, error) {
	var errs []error
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := exec.Execute(ctx, c, probeArg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}
		return c, nil
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("no candidates given")
	}
	return "", errors.Join(errs...)
}
