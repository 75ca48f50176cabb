package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// ErrBinaryNotFound indicates the encoder binary could not be located or started.
var ErrBinaryNotFound = errors.New("encoder binary not found")

// UnknownExitCode is reported when the process never produced an exit status.
const UnknownExitCode = -1

// Options selects the codecs and extra arguments for one invocation.
type Options struct {
	VideoCodec string
	AudioCodec string
	ExtraArgs  []string
}

// Result captures the exit status and combined output of one invocation.
type Result struct {
	ExitCode int
	Output   string
}

// Client defines encoder behaviour so the orchestrator can be tested with fakes.
type Client interface {
	Run(ctx context.Context, inputPath, outputPath string, opts Options) (Result, error)
	Available(ctx context.Context) bool
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = strings.TrimSpace(binary)
		}
	}
}

// WithTimeout bounds the wall-clock duration of a single conversion.
// A zero or negative duration disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		c.timeout = timeout
	}
}

// CLI invokes an ffmpeg-compatible encoder as a child process.
type CLI struct {
	binary  string
	timeout time.Duration
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the configured encoder executable.
func (c *CLI) Binary() string {
	return c.binary
}

// Run launches one conversion as
//
//	<binary> -hide_banner -y -i <input> -c:v <video> -c:a <audio> [extra...] <output>
//
// and blocks until the process exits. The -y flag makes an existing output
// path an overwrite rather than a prompt, keeping the derived-path policy
// deterministic. The returned Result always carries the combined output and
// the exit code when one is known.
func (c *CLI) Run(ctx context.Context, inputPath, outputPath string, opts Options) (Result, error) {
	if strings.TrimSpace(inputPath) == "" {
		return Result{ExitCode: UnknownExitCode}, errors.New("input path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return Result{ExitCode: UnknownExitCode}, errors.New("output path required")
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"-hide_banner", "-y", "-i", inputPath}
	if opts.VideoCodec != "" {
		args = append(args, "-c:v", opts.VideoCodec)
	}
	if opts.AudioCodec != "" {
		args = append(args, "-c:a", opts.AudioCodec)
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, outputPath)

	cmd := commandContext(runCtx, c.binary, args...) //nolint:gosec
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return Result{ExitCode: UnknownExitCode, Output: err.Error()},
				fmt.Errorf("%w: %q", ErrBinaryNotFound, c.binary)
		}
		return Result{ExitCode: UnknownExitCode, Output: err.Error()}, fmt.Errorf("start encoder: %w", err)
	}

	waitErr := cmd.Wait()
	result := Result{ExitCode: 0, Output: buf.String()}
	if waitErr == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if ctxErr := runCtx.Err(); ctxErr != nil {
			return result, fmt.Errorf("encoder interrupted: %w", ctxErr)
		}
		return result, fmt.Errorf("encoder exited with status %d", result.ExitCode)
	}

	result.ExitCode = UnknownExitCode
	return result, fmt.Errorf("wait encoder: %w", waitErr)
}

// Available reports whether the encoder binary can be invoked at all. It runs
// the binary with -version under a short timeout and never returns an error.
func (c *CLI) Available(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := commandContext(probeCtx, c.binary, "-version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

var _ Client = (*CLI)(nil)
