package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Runner runs an external command, feeding it stdin and returning its stdout
type Runner interface {
	Run(ctx context.Context, args []string, stdin []byte) (stdout []byte, err error)
}

// Errors
var (
	ErrNoCommand = errors.New("no command given")
)

// Error is returned when a command exits with a non-zero status
type Error struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.ExitCode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Exec runs commands as child processes
type Exec struct{}

// Run starts the command, writes stdin to it and waits for it to exit
func (Exec) Run(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
	if len(args) == 0 {
		return nil, ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &Error{
				Command:  args[0],
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
				Err:      err,
			}
		}

		return nil, fmt.Errorf("error running %s: %w", args[0], err)
	}

	return stdout.Bytes(), nil
}
