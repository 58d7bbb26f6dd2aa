// Package dump handles producing and reading repository-text dumps.
//
// The producer invokes an external repository-flattening tool (repomix by
// default) as a subprocess. All hard failures of this layer - missing
// binary, non-zero exit, timeout, oversized output - propagate as errors;
// tolerating malformed dump content is the fitter's job, not ours.
package dump

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/contextfit/pkg/config"
	"github.com/cicd-ai-toolkit/contextfit/pkg/errors"
	"github.com/cicd-ai-toolkit/contextfit/pkg/observability"
)

// validRepoPathPattern matches safe repository paths for the subprocess argv
var validRepoPathPattern = regexp.MustCompile(`^[a-zA-Z0-9/_\-\.~]+$`)

// dangerousShellChars contains characters that must be rejected to prevent shell injection
var dangerousShellChars = []string{"|", "&", ";", "$", "(", ")", "`", "{", "}", ">", "<", "\n", "\t", " "}

// sanitizeRepoPath validates that a repository path is safe to pass to the
// flattening command.
func sanitizeRepoPath(path string) error {
	if path == "" {
		return nil // Empty path is valid (defaults to the working directory)
	}
	for _, ch := range dangerousShellChars {
		if strings.Contains(path, ch) {
			return fmt.Errorf("invalid repo path: contains dangerous character %q", ch)
		}
	}
	if !validRepoPathPattern.MatchString(path) {
		return fmt.Errorf("invalid repo path: contains invalid characters")
	}
	return nil
}

// Producer runs the external flattening command to obtain a dump.
type Producer struct {
	command  string
	args     []string
	timeout  time.Duration
	maxBytes int64
	log      observability.Logger
}

// NewProducer creates a producer from validated configuration.
func NewProducer(cfg config.ProducerConfig, log observability.Logger) *Producer {
	if log == nil {
		log = observability.NewNop()
	}
	return &Producer{
		command:  cfg.Command,
		args:     cfg.Args,
		timeout:  cfg.TimeoutDuration(),
		maxBytes: int64(cfg.MaxOutputMB) * 1024 * 1024,
		log:      log,
	}
}

// Produce runs the flattening command against repoPath and returns its
// stdout. Output larger than the configured cap is an error: a silently
// clipped dump would violate the fitter's no-silent-loss contract.
func (p *Producer) Produce(ctx context.Context, repoPath string) (string, error) {
	if err := sanitizeRepoPath(repoPath); err != nil {
		return "", errors.ValidationError("invalid repo path", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := p.args
	if repoPath != "" {
		args = append(append([]string{}, p.args...), repoPath)
	}

	cmd := exec.CommandContext(ctx, p.command, args...)

	var stdout cappedBuffer
	stdout.limit = p.maxBytes
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.log.Debug("running dump producer",
		observability.String("command", p.command),
		observability.String("repo", repoPath))

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.TimeoutError(
				fmt.Sprintf("%s timed out after %s", p.command, p.timeout), ctx.Err())
		}
		if stdout.overflowed {
			return "", errors.ProducerError(
				fmt.Sprintf("%s output exceeded %d MB cap", p.command, p.maxBytes/(1024*1024)), nil)
		}
		return "", errors.ProducerError(
			fmt.Sprintf("%s failed: %s", p.command, strings.TrimSpace(stderr.String())), err)
	}

	if stdout.overflowed {
		return "", errors.ProducerError(
			fmt.Sprintf("%s output exceeded %d MB cap", p.command, p.maxBytes/(1024*1024)), nil)
	}

	return stdout.String(), nil
}

// cappedBuffer aborts the subprocess write pipe once the cap is hit, which
// terminates the command rather than buffering unbounded output.
type cappedBuffer struct {
	buf        bytes.Buffer
	limit      int64
	overflowed bool
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if c.limit > 0 && int64(c.buf.Len())+int64(len(p)) > c.limit {
		c.overflowed = true
		return 0, fmt.Errorf("output cap of %d bytes exceeded", c.limit)
	}
	return c.buf.Write(p)
}

func (c *cappedBuffer) String() string {
	return c.buf.String()
}

// Read returns dump text from a file, or from r when path is "-".
func Read(path string, r io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", errors.ProducerError("failed to read dump from stdin", err)
		}
		return string(data), nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.ValidationError(fmt.Sprintf("cannot resolve path: %s", path), err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", errors.ProducerError(fmt.Sprintf("failed to read dump file: %s", path), err)
	}
	return string(data), nil
}
