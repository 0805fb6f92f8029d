package sysinfo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHostSource_ReadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "hostname")
	require.NoError(t, os.WriteFile(good, []byte("box\n"), 0o644))
	bad := filepath.Join(dir, "os-release")
	require.NoError(t, os.WriteFile(bad, []byte("box\xff\n"), 0o644))

	src := NewHostSource(0, nil)
	got, err := src.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "box\n", got)

	_, err = src.ReadFile(bad)
	assert.ErrorIs(t, err, ErrInvalidText)

	_, err = src.ReadFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestHostSource_RunLossy(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	src := NewHostSource(0, nil)
	out, err := src.Run(context.Background(), "/bin/sh", "-c", "printf 'box\\377\\n'")
	require.NoError(t, err)
	assert.Equal(t, "box\uFFFD\n", out)
}

func TestHostSource_RunLogsSummary(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	core, logs := observer.New(zap.DebugLevel)
	src := NewHostSource(0, zap.New(core))

	_, err := src.Run(context.Background(), "/bin/sh", "-c", "seq 1 1500")
	require.NoError(t, err)

	entries := logs.FilterMessage("command").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/bin/sh -c seq 1 1500", fields["cmd"])
	assert.Equal(t, "6.4 kB", fields["stdout"])
	assert.Equal(t, "1,500", fields["lines"])
	assert.Regexp(t, `^[0-9.]+ \S?s$`, fields["took"])
}

func TestHostSource_RunNonZeroExit(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	src := NewHostSource(0, nil)
	out, err := src.Run(context.Background(), "/bin/sh", "-c", "printf 'a\\nb\\n'; echo oops >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestHostSource_RunNotInvocable(t *testing.T) {
	src := NewHostSource(0, nil)
	_, err := src.Run(context.Background(), "fumofetch-no-such-binary-7f3a")
	assert.Error(t, err)
}

func TestHostSource_RunTimeout(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	src := NewHostSource(50*time.Millisecond, nil)
	_, err := src.Run(context.Background(), "/bin/sh", "-c", "exec sleep 5")
	assert.Error(t, err)
}

func TestHostSource_Exists(t *testing.T) {
	dir := t.TempDir()
	src := NewHostSource(0, nil)
	assert.True(t, src.Exists(dir))
	assert.False(t, src.Exists(filepath.Join(dir, "amdgpu")))
}
