package diskusage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultBinary is the disk usage utility invoked by Command.
const DefaultBinary = "du"

// ErrNotFound is returned when the du binary cannot be located.
var ErrNotFound = errors.New("`du` command not found")

// Command lists disk usage by running `du -d 1 [-h] <path>`.
type Command struct {
	// Binary is the utility to run. Empty means DefaultBinary.
	Binary string
	// Stderr receives the utility's stderr when it exits non-zero.
	Stderr io.Writer
	// Logger receives debug output. May be nil.
	Logger *log.Logger
}

// Args returns the argument list passed to the utility.
func Args(path string, humanReadable bool) []string {
	args := []string{"-d", "1"}
	if humanReadable {
		args = append(args, "-h")
	}

	return append(args, path)
}

// List runs the utility on path and returns its non-empty stdout lines.
//
// A non-zero exit is not an error: stderr is forwarded and whatever stdout
// was produced is still returned.
func (c *Command) List(ctx context.Context, path string, humanReadable bool) ([]string, error) {
	binary := c.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return nil, ErrNotFound
	}

	args := Args(path, humanReadable)
	if c.Logger != nil {
		c.Logger.Debug("running", "cmd", resolved, "args", args)
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, resolved, args...) //nolint:gosec // Binary is resolved from PATH
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A du killed by cancellation exits non-zero too; its output is incomplete.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			if errors.Is(err, exec.ErrNotFound) {
				return nil, ErrNotFound
			}

			return nil, err
		}

		if c.Logger != nil {
			c.Logger.Debug("du exited non-zero", "path", path, "code", exitErr.ExitCode())
		}

		if c.Stderr != nil {
			_, _ = io.Copy(c.Stderr, &stderr)
		}
	}

	return splitLines(stdout.String()), nil
}

// splitLines splits s on newlines and drops empty lines.
func splitLines(s string) []string {
	lines := make([]string, 0, strings.Count(s, "\n")+1)

	for line := range strings.SplitSeq(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
