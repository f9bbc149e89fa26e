package diskusage_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/duim/internal/diskusage"
)

// fakeDu writes an executable shell script standing in for du.
func fakeDu(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	path := filepath.Join(t.TempDir(), "du")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o700)) //nolint:gosec // Test script

	return path
}

func TestArgs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"-d", "1", "/x"}, diskusage.Args("/x", false))
	assert.Equal(t, []string{"-d", "1", "-h", "/x"}, diskusage.Args("/x", true))
}

func TestCommandList(t *testing.T) {
	t.Parallel()

	bin := fakeDu(t, `printf 'args:%s\n' "$*"
printf '40\t%s/a\n' "$3"
printf '\n'
printf '100\t%s\n' "$3"
`)

	var stderr bytes.Buffer

	cmd := diskusage.Command{Binary: bin, Stderr: &stderr}

	lines, err := cmd.List(t.Context(), "/data", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"args:-d 1 /data", "40\t/data/a", "100\t/data"}, lines)
	assert.Empty(t, stderr.String())
}

func TestCommandListHumanReadableArgs(t *testing.T) {
	t.Parallel()

	bin := fakeDu(t, `printf '%s\n' "$*"`)

	cmd := diskusage.Command{Binary: bin}

	lines, err := cmd.List(t.Context(), "/data", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"-d 1 -h /data"}, lines)
}

func TestCommandListNonZeroExitKeepsOutput(t *testing.T) {
	t.Parallel()

	bin := fakeDu(t, `printf '5\t/data/a\n'
echo "du: cannot read directory '/data/b': Permission denied" >&2
exit 1
`)

	var stderr bytes.Buffer

	cmd := diskusage.Command{Binary: bin, Stderr: &stderr}

	lines, err := cmd.List(t.Context(), "/data", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"5\t/data/a"}, lines)
	assert.Equal(t, "du: cannot read directory '/data/b': Permission denied\n", stderr.String())
}

func TestCommandListCancelled(t *testing.T) {
	t.Parallel()

	bin := fakeDu(t, `printf '5\t/data/a\n'
exec sleep 5
`)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var stderr bytes.Buffer

	cmd := diskusage.Command{Binary: bin, Stderr: &stderr}

	lines, err := cmd.List(ctx, "/data", false)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, lines)
}

func TestCommandListInterruptedDiscardsPartialOutput(t *testing.T) {
	t.Parallel()

	bin := fakeDu(t, `printf '5\t/data/a\n'
exec sleep 5
`)

	ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
	defer cancel()

	var stderr bytes.Buffer

	cmd := diskusage.Command{Binary: bin, Stderr: &stderr}

	start := time.Now()
	lines, err := cmd.List(ctx, "/data", false)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, lines)
	assert.Empty(t, stderr.String())
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestCommandListMissingBinary(t *testing.T) {
	t.Parallel()

	cmd := diskusage.Command{Binary: filepath.Join(t.TempDir(), "no-such-du")}

	_, err := cmd.List(t.Context(), ".", false)
	require.ErrorIs(t, err, diskusage.ErrNotFound)
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p, err := diskusage.NewProvider(diskusage.ProviderDu, diskusage.ProviderOptions{})
	require.NoError(t, err)
	assert.IsType(t, &diskusage.Command{}, p)

	p, err = diskusage.NewProvider(diskusage.ProviderWalk, diskusage.ProviderOptions{})
	require.NoError(t, err)
	assert.IsType(t, &diskusage.Walker{}, p)

	_, err = diskusage.NewProvider("ncdu", diskusage.ProviderOptions{})
	require.Error(t, err)
}
