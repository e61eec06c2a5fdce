// Package runner is the execution engine: it prints suggestions, obtains
// confirmation, enforces the offline policy, re-validates every command and
// finally spawns it. No shell is ever invoked; a validated command line is
// split into argv and handed straight to process creation.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"archassist/internal/config"
	"archassist/internal/safety"
	"archassist/internal/types"
)

// Runner executes approved commands sequentially.
type Runner struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	log    *zap.Logger
}

// New builds a Runner attached to the process's standard streams.
func New(log *zap.Logger) *Runner {
	return NewWithIO(log, os.Stdin, os.Stdout, os.Stderr)
}

// NewWithIO builds a Runner with explicit streams. Tests inject buffers.
func NewWithIO(log *zap.Logger, in io.Reader, out, errOut io.Writer) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		log:    log,
	}
}

// Confirm asks the user whether the batch should run. Only the exact
// answers y, Y, yes and YES are affirmative; anything else declines.
func (r *Runner) Confirm(cfg config.ExecConfig) (bool, error) {
	if cfg.Yes {
		return true, nil
	}
	fmt.Fprint(r.out, "Run these commands? [y/N] ")
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return false, types.CommandFailed("confirm (%v)", err)
	}
	switch strings.TrimSpace(line) {
	case "y", "Y", "yes", "YES":
		return true, nil
	}
	return false, nil
}

// EnsureOfflineOK rejects install/upgrade network operations when offline
// mode is set.
func EnsureOfflineOK(s types.Suggestion, cfg config.ExecConfig) error {
	if !cfg.Offline {
		return nil
	}
	cmd := s.Command
	isPkgOp := strings.Contains(cmd, " pacman -S") ||
		strings.Contains(cmd, " pacman -Syu") ||
		strings.Contains(cmd, "paru -S") ||
		strings.HasPrefix(cmd, "pacman -S") ||
		strings.HasPrefix(cmd, "paru -S") ||
		strings.HasPrefix(cmd, "sudo pacman -S")
	if isPkgOp {
		return types.Unsafe("offline mode: blocked network command: %s", cmd)
	}
	return nil
}

// ExecuteBatch runs suggestions strictly in order. The first failure aborts
// the remaining commands; nothing already run is rolled back.
func (r *Runner) ExecuteBatch(suggestions []types.Suggestion, cfg config.ExecConfig) error {
	for _, s := range suggestions {
		if err := EnsureOfflineOK(s, cfg); err != nil {
			return err
		}
		// Defense in depth: translators validated already.
		if err := safety.Validate(s.Command); err != nil {
			return err
		}
		if err := r.Run(s.Command, cfg); err != nil {
			return err
		}
	}
	return nil
}

// Run prints and executes one command line. Dry-run stops after printing.
// The command is split with shell-style quoting and spawned directly with
// no inherited standard input.
func (r *Runner) Run(command string, cfg config.ExecConfig) error {
	fmt.Fprintln(r.out, command)

	if cfg.DryRun {
		return nil
	}

	parts, err := shlex.Split(command)
	if err != nil {
		return types.CommandFailed("%s (%v)", command, err)
	}
	if len(parts) == 0 {
		return types.CommandFailed("%s", command)
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = r.out
	cmd.Stderr = r.errOut

	runErr := cmd.Run()

	if cfg.Verbose && cmd.ProcessState != nil {
		r.log.Debug("command exited",
			zap.String("command", command),
			zap.Int("exit_code", cmd.ProcessState.ExitCode()))
	}

	if runErr != nil {
		var execErr *exec.Error
		if errors.As(runErr, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return types.CommandFailed("%s not found; install or adjust PATH", parts[0])
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return types.CommandFailed("%s exited with %s", command, exitErr.ProcessState)
		}
		return types.CommandFailed("%s (%v)", command, runErr)
	}

	return nil
}
