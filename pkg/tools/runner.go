package tools

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/logging"
	"github.com/rs/zerolog"
)

// TarWarningExit is the status GNU tar uses for non-fatal problems such as
// a file changing while it was read.
const TarWarningExit = 1

// Command is a single external process invocation
type Command struct {
	Name string
	Args []string
	Dir  string

	// WarnExits lists exit statuses that are logged as warnings instead
	// of being reported as failures.
	WarnExits []int
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// warns reports whether err is an exit with one of the WarnExits statuses.
// A process killed by a signal never matches.
func (c Command) warns(err error) (int, bool) {
	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return 0, false
	}
	status := exitErr.ExitCode()
	for _, s := range c.WarnExits {
		if s == status && status > 0 {
			return status, true
		}
	}
	return status, false
}

// Output is what a finished command wrote
type Output struct {
	Stdout string
	Stderr string
}

// Runner executes external tools with a fixed environment
type Runner struct {
	logger zerolog.Logger
	env    []string
}

// NewRunner creates a runner whose environment is the current one, with
// cygwinBin prepended to PATH when running on Windows.
func NewRunner(cygwinBin string) *Runner {
	return &Runner{
		logger: logging.GetLogger("tools.runner"),
		env:    Environ(runtime.GOOS, cygwinBin, os.Environ()),
	}
}

// Environ returns base with dir prepended to PATH when goos is windows.
// Windows environment keys are case-insensitive, so "Path" is matched too.
func Environ(goos, dir string, base []string) []string {
	env := append([]string(nil), base...)
	if goos != "windows" || dir == "" {
		return env
	}

	for i, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.EqualFold(key, "PATH") {
			env[i] = key + "=" + dir + ";" + value
			return env
		}
	}
	return append(env, "PATH="+dir)
}

// Run executes cmd and captures its output. A non-zero exit is returned as
// a TOOL_EXECUTE error carrying stderr in its details, unless the status is
// one of cmd.WarnExits.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Output, error) {
	logging.LogCommand(cmd.Name, cmd.Args)
	r.logger.Debug().
		Str("command", cmd.String()).
		Str("workingDir", cmd.Dir).
		Msg("Running tool")

	c := r.command(ctx, cmd)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	out := &Output{Stdout: stdout.String(), Stderr: stderr.String()}

	if stderr.Len() > 0 {
		r.logger.Debug().
			Str("command", cmd.Name).
			Str("output", out.Stderr).
			Msg("Command stderr")
	}

	if err != nil {
		return out, r.check(err, cmd, out.Stderr)
	}
	return out, nil
}

// Pipe runs src with its stdout connected to dst's stdin and waits for
// both. Errors from either side are reported, the producer's first.
func (r *Runner) Pipe(ctx context.Context, src, dst Command) error {
	r.logger.Debug().
		Str("source", src.String()).
		Str("sourceDir", src.Dir).
		Str("sink", dst.String()).
		Str("sinkDir", dst.Dir).
		Msg("Running tool pipe")

	producer := r.command(ctx, src)
	consumer := r.command(ctx, dst)

	pr, pw, err := os.Pipe()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create pipe")
	}

	var srcErr, dstErr bytes.Buffer
	producer.Stdout = pw
	producer.Stderr = &srcErr
	consumer.Stdin = pr
	consumer.Stderr = &dstErr

	if err := consumer.Start(); err != nil {
		pr.Close()
		pw.Close()
		return r.failure(err, dst, "")
	}
	if err := producer.Start(); err != nil {
		pr.Close()
		pw.Close()
		_ = consumer.Wait()
		return r.failure(err, src, "")
	}

	// Both children hold their own copies now; closing ours lets the
	// consumer see EOF once the producer exits.
	pr.Close()
	pw.Close()

	producerErr := producer.Wait()
	consumerErr := consumer.Wait()

	if srcErr.Len() > 0 || dstErr.Len() > 0 {
		r.logger.Debug().
			Str("sourceStderr", srcErr.String()).
			Str("sinkStderr", dstErr.String()).
			Msg("Pipe stderr")
	}

	if producerErr != nil {
		if err := r.check(producerErr, src, srcErr.String()); err != nil {
			return err
		}
	}
	if consumerErr != nil {
		return r.check(consumerErr, dst, dstErr.String())
	}
	return nil
}

func (r *Runner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = r.env
	return c
}

// check turns a finished command's error into nil when its exit status is
// tolerated, and into a coded failure otherwise.
func (r *Runner) check(err error, cmd Command, stderr string) error {
	status, ok := cmd.warns(err)
	if !ok {
		return r.failure(err, cmd, stderr)
	}

	r.logger.Warn().
		Str("command", cmd.String()).
		Str("workingDir", cmd.Dir).
		Int("exitStatus", status).
		Str("stderr", strings.TrimSpace(stderr)).
		Msg("Command exited with a warning status, continuing")
	return nil
}

func (r *Runner) failure(err error, cmd Command, stderr string) error {
	code := errors.ErrToolExecute
	if stderrors.Is(err, exec.ErrNotFound) {
		code = errors.ErrToolNotFound
	}

	r.logger.Warn().
		Err(err).
		Str("command", cmd.String()).
		Str("workingDir", cmd.Dir).
		Str("stderr", stderr).
		Msg("Command execution failed")

	return errors.Wrapf(err, code, "failed to execute %s", cmd.Name).
		WithDetail("command", cmd.String()).
		WithDetail("dir", cmd.Dir).
		WithDetail("stderr", strings.TrimSpace(stderr))
}
