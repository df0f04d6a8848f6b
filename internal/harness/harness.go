// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cliwire/internal/log"
)

// EnvChild marks a process started by the harness.
const EnvChild = "CLIWIRE_HARNESS"

// Isolation selects where an invoked command runs.
type Isolation int

const (
	// Process runs the command in a child process.
	Process Isolation = iota
	// InProcess runs the command in the calling process with captured
	// writers and panic recovery.
	InProcess
)

// Result is the outcome of one invocation.
type Result struct {
	OK       bool   `json:"ok" yaml:"ok"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	ExitCode int    `json:"exitCode" yaml:"exitCode"`
	Stdout   string `json:"stdout" yaml:"stdout"`
	Stderr   string `json:"stderr" yaml:"stderr"`
}

// Harness invokes commands below one root.
type Harness struct {
	root       *cli.Command
	isolation  Isolation
	timeout    time.Duration
	executable string
	env        []string

	// mu serializes in-process runs, which swap the root's writers.
	mu sync.Mutex
}

// Option configures a Harness.
type Option func(*Harness)

// WithIsolation selects Process (the default) or InProcess.
func WithIsolation(i Isolation) Option {
	return func(h *Harness) { h.isolation = i }
}

// WithTimeout bounds each invocation. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(h *Harness) { h.timeout = d }
}

// WithExecutable overrides the binary started for child processes.
func WithExecutable(path string) Option {
	return func(h *Harness) { h.executable = path }
}

// WithEnv adds KEY=VALUE pairs to the child environment.
func WithEnv(kv ...string) Option {
	return func(h *Harness) { h.env = append(h.env, kv...) }
}

// New returns a Harness for commands below root.
func New(root *cli.Command, opts ...Option) *Harness {
	h := &Harness{root: root, executable: os.Args[0]}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Invoke runs cmd with values mapped onto its flags. The returned error is
// reserved for problems found before the command starts; everything that
// happens while it runs is reported in Result.
func (h *Harness) Invoke(ctx context.Context, cmd *cli.Command, values ...any) (Result, error) {
	flags, err := Args(cmd, values...)
	if err != nil {
		return Result{}, err
	}
	path, ok := commandPath(h.root, cmd)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w", cmd.Name, ErrNotInTree)
	}
	args := append(path, flags...)

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	log.Debugf("harness invoking %s %v", h.root.Name, args)
	if h.isolation == InProcess {
		return h.runInProcess(ctx, args), nil
	}
	return h.runProcess(ctx, args)
}

func (h *Harness) runProcess(ctx context.Context, args []string) (Result, error) {
	var stdout, stderr bytes.Buffer
	//nolint:gosec // re-exec of the current binary
	c := exec.CommandContext(ctx, h.executable, args...)
	c.Env = append(append(os.Environ(), EnvChild+"=1"), h.env...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = time.Second

	err := c.Run()
	res := Result{
		OK:       err == nil,
		ExitCode: c.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		res.Error = fmt.Sprintf("timed out: %v", ctx.Err())
	case errors.As(err, &exitErr):
		res.Error = lastLine(res.Stderr, exitErr.Error())
	default:
		return Result{}, fmt.Errorf("failed to start %s: %w", h.executable, err)
	}
	return res, nil
}

func (h *Harness) runInProcess(ctx context.Context, args []string) (res Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var stdout, stderr bytes.Buffer
	savedOut, savedErr, savedHandler := h.root.Writer, h.root.ErrWriter, h.root.ExitErrHandler
	h.root.Writer = &stdout
	h.root.ErrWriter = &stderr
	h.root.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	defer func() {
		h.root.Writer, h.root.ErrWriter, h.root.ExitErrHandler = savedOut, savedErr, savedHandler

		if r := recover(); r != nil {
			res = Result{ExitCode: 2, Error: fmt.Sprintf("panic: %v", r)}
		}
		res.Stdout = stdout.String()
		res.Stderr = stderr.String()
	}()

	err := h.root.Run(ctx, append([]string{h.root.Name}, args...))
	if err != nil {
		return Result{ExitCode: exitCode(err), Error: err.Error()}
	}
	return Result{OK: true}
}

// Serve runs root on the process arguments and exits when the process was
// started by a Harness. Otherwise it returns immediately.
func Serve(root *cli.Command) {
	if os.Getenv(EnvChild) != "1" {
		return
	}
	os.Exit(serve(context.Background(), root, os.Args[1:]))
}

func serve(ctx context.Context, root *cli.Command, args []string) (code int) {
	root.Writer = os.Stdout
	root.ErrWriter = os.Stderr
	root.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n", r)
			code = 2
		}
	}()

	if err := root.Run(ctx, append([]string{root.Name}, args...)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() != 0 {
		return coder.ExitCode()
	}
	return 1
}

// lastLine returns the last non-blank line of s, or fallback.
func lastLine(s, fallback string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		return last
	}
	return fallback
}
