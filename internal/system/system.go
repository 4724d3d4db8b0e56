// Package system wraps the helper scripts and console ioctls the device
// relies on.
package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type Runner interface {
	Run(ctx context.Context, cmd string, args ...string) (stdout, stderr string, err error)
}

type NoopRunner struct{}

func (NoopRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	return "", "", nil
}

// ShellRunner executes commands via sudo and uses PATH to resolve scripts.
// It returns stdout, stderr, and an error if the command exits non-zero.
type ShellRunner struct {
	Logger Logger
	// Sudo defaults to "sudo"; set to "-" to run commands directly.
	Sudo string
}

func (r ShellRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	name, fullArgs := r.command(cmd, args)
	c := exec.CommandContext(ctx, name, fullArgs...)
	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf
	if r.Logger != nil {
		r.Logger.Infof("system", "run %s %s", cmd, strings.Join(redact(cmd, args), " "))
	}
	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("exit %d: %w", exitErr.ExitCode(), err)
		}
		if r.Logger != nil {
			r.Logger.Errorf("system", "%s failed: %v: %s", cmd, err, strings.TrimSpace(errBuf.String()))
		}
		return outBuf.String(), errBuf.String(), err
	}
	return outBuf.String(), errBuf.String(), nil
}

func (r ShellRunner) command(cmd string, args []string) (string, []string) {
	switch r.Sudo {
	case "-":
		return cmd, args
	case "":
		return "sudo", append([]string{cmd}, args...)
	default:
		return r.Sudo, append([]string{cmd}, args...)
	}
}

// redact hides the password argument of a wifi join.
func redact(cmd string, args []string) []string {
	out := append([]string(nil), args...)
	if cmd == wifiScript && len(out) >= 3 && out[0] == "join" {
		out[2] = fmt.Sprintf("<%d chars>", len(out[2]))
	}
	return out
}
