// Package command runs the external programs that package manager and
// git properties delegate to.
package command

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
)

// Cmd is a program invocation
type Cmd struct {
	Name string
	Args []string
	// Env holds KEY=VALUE pairs added to the inherited environment
	Env []string
}

// New returns a Cmd for name with args
func New(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// WithEnv returns a copy of c with extra environment variables
func (c Cmd) WithEnv(env ...string) Cmd {
	c.Env = append(append([]string(nil), c.Env...), env...)
	return c
}

// String returns the command line
func (c Cmd) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner starts programs. A non-zero exit status is not an error; only
// failing to run the program at all is.
type Runner interface {
	// Output runs cmd capturing its standard output
	Output(cmd Cmd) ([]byte, int, error)

	// Run runs cmd with its output passed through to the user
	Run(cmd Cmd) (int, error)
}

// Exec is the Runner backed by os/exec
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	logger zerolog.Logger
}

// NewExec passes command output through to stderr so that stdout stays
// reserved for reports.
func NewExec() *Exec {
	return &Exec{
		Stdin:  os.Stdin,
		Stdout: os.Stderr,
		Stderr: os.Stderr,
		logger: logging.GetLogger("command"),
	}
}

func (e *Exec) command(c Cmd) *exec.Cmd {
	logging.LogCommand(e.logger, c.Name, c.Args)
	cmd := exec.Command(c.Name, c.Args...)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd
}

func (e *Exec) Output(c Cmd) ([]byte, int, error) {
	cmd := e.command(c)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code, err := exitCode(cmd.Run(), c)
	if stderr.Len() > 0 {
		e.logger.Trace().Str("command", c.Name).Str("stderr", stderr.String()).Msg("command stderr")
	}
	return stdout.Bytes(), code, err
}

func (e *Exec) Run(c Cmd) (int, error) {
	cmd := e.command(c)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return exitCode(cmd.Run(), c)
}

func exitCode(err error, c Cmd) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, errors.Wrapf(err, errors.ErrCommandFailed, "failed to run %s", c.Name)
}

// Succeed runs cmd with Run and turns a non-zero exit status into a
// COMMAND_FAILED error.
func Succeed(r Runner, c Cmd) error {
	code, err := r.Run(c)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Newf(errors.ErrCommandFailed, "%s exited with status %d", c, code).
			WithDetail("command", c.String()).
			WithDetail("exit_code", code)
	}
	return nil
}
