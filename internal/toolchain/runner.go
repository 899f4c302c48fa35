package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
)

// Runner executes an external command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (*Output, error)
}

// Output captures the result of a command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive a live copy of the command output when set.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args. A missing binary or a non-zero exit is a
// tool error; the captured output is returned in both cases where known.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	op := "toolchain." + name

	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, errs.Wrap(fmt.Errorf("%s not found on PATH: %w", name, err), errs.KindTool, op)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = teeTo(&stdoutBuf, r.Stdout)
	cmd.Stderr = teeTo(&stderrBuf, r.Stderr)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &errs.Error{
				Kind: errs.KindTool,
				Op:   op,
				Err:  fmt.Errorf("%s %s exited with code %d%s", name, strings.Join(args, " "), output.ExitCode, stderrTail(output.Stderr)),
			}
		}
		return output, errs.Wrap(fmt.Errorf("executing %s: %w", name, err), errs.KindTool, op)
	}

	return output, nil
}

func teeTo(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// stderrTail returns the last non-empty stderr line formatted for an error.
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return ""
	}
	return ": " + last
}
