package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ErrInvalidText is returned by HostSource.ReadFile for files that are not
// valid UTF-8.
var ErrInvalidText = errors.New("invalid UTF-8")

// Source is the text provider every probe builds on.
type Source interface {
	// ReadFile returns the full contents of the file at path. Files that are
	// not valid UTF-8 are an error.
	ReadFile(path string) (string, error)

	// Run executes name with args and returns its standard output. A
	// non-zero exit status is not an error; failing to start the program is.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// Exists reports whether path is present, e.g. a /sys/module marker.
	Exists(path string) bool
}

// HostSource reads the local file system and spawns local processes.
type HostSource struct {
	// Timeout bounds each command. Zero waits for the command to finish.
	Timeout time.Duration

	log *zap.Logger
}

// NewHostSource returns a HostSource. A nil logger disables logging.
func NewHostSource(timeout time.Duration, log *zap.Logger) *HostSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &HostSource{Timeout: timeout, log: log}
}

// ReadFile implements Source.
func (h *HostSource) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		h.log.Debug("read failed", zap.String("path", path), zap.Error(err))
		return "", err
	}
	h.log.Debug("read", zap.String("path", path), zap.String("size", humanize.Bytes(uint64(len(b)))))
	if !utf8.Valid(b) {
		return "", fmt.Errorf("read %s: %w", path, ErrInvalidText)
	}
	return string(b), nil
}

// Run implements Source. Stdin is left unattached and stderr is discarded.
// Invalid UTF-8 in the output is replaced rather than rejected.
func (h *HostSource) Run(ctx context.Context, name string, args ...string) (string, error) {
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	start := time.Now()
	c := exec.CommandContext(ctx, name, args...)
	if h.Timeout > 0 {
		// Grandchildren holding stdout open must not outlive the timeout.
		c.WaitDelay = h.Timeout
	}
	out, err := c.Output()
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			h.log.Debug("command not invocable", zap.String("cmd", line), zap.Error(err))
			return "", fmt.Errorf("run %s: %w", name, err)
		}
		h.log.Debug("command exited non-zero", zap.String("cmd", line), zap.Int("status", exitErr.ExitCode()))
	}

	text := decode(out)
	h.log.Debug("command",
		zap.String("cmd", line),
		zap.String("stdout", humanize.Bytes(uint64(len(out)))),
		zap.String("lines", humanize.Comma(int64(CountLines(text)))),
		zap.String("took", humanize.SIWithDigits(time.Since(start).Seconds(), 1, "s")),
	)
	return text, nil
}

// decode converts raw bytes to text, replacing invalid UTF-8 sequences.
func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
