package xquartz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_NotInstalled(t *testing.T) {
	orig := lookPath
	lookPath = func(name string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { lookPath = orig })

	_, err := Locate()
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestLocate_FindsBinary(t *testing.T) {
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if name == "Xquartz" {
			return "/opt/X11/bin/Xquartz", nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })

	path, err := Locate()
	require.NoError(t, err)
	assert.Equal(t, "/opt/X11/bin/Xquartz", path)
}

func TestInstallInstructions(t *testing.T) {
	text := InstallInstructions()
	assert.Contains(t, text, "brew install --cask xquartz")
	assert.Contains(t, text, DownloadURL)
}

func TestRunning_FindsProcessByName(t *testing.T) {
	started := time.Now().Add(-time.Hour)

	orig := snapshotProcesses
	snapshotProcesses = func() ([]Proc, error) {
		return []Proc{
			{PID: 1, Name: "launchd"},
			{PID: 4242, Name: "XQuartz", Started: started},
		}, nil
	}
	t.Cleanup(func() { snapshotProcesses = orig })

	proc, err := Running()
	require.NoError(t, err)
	require.NotNil(t, proc)
	assert.Equal(t, int32(4242), proc.PID)
	assert.Equal(t, started, proc.Started)
}

func TestRunning_NilWhenAbsent(t *testing.T) {
	orig := snapshotProcesses
	snapshotProcesses = func() ([]Proc, error) {
		return []Proc{{PID: 1, Name: "launchd"}}, nil
	}
	t.Cleanup(func() { snapshotProcesses = orig })

	proc, err := Running()
	require.NoError(t, err)
	assert.Nil(t, proc)
}

func TestRunning_MatchesCaseInsensitively(t *testing.T) {
	orig := snapshotProcesses
	snapshotProcesses = func() ([]Proc, error) {
		return []Proc{{PID: 7, Name: "xquartz"}}, nil
	}
	t.Cleanup(func() { snapshotProcesses = orig })

	proc, err := Running()
	require.NoError(t, err)
	require.NotNil(t, proc)
	assert.Equal(t, int32(7), proc.PID)
}

func TestLaunch_InvokesOpen(t *testing.T) {
	var gotName string
	var gotArgs []string

	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return nil, nil
	}
	t.Cleanup(func() { runCommand = orig })

	require.NoError(t, Launch(context.Background(), "XQuartz"))
	assert.Equal(t, "open", gotName)
	assert.Equal(t, []string{"-a", "XQuartz"}, gotArgs)
}

func TestLaunch_DefaultsAppName(t *testing.T) {
	var gotArgs []string

	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		return nil, nil
	}
	t.Cleanup(func() { runCommand = orig })

	require.NoError(t, Launch(context.Background(), ""))
	assert.Equal(t, []string{"-a", "XQuartz"}, gotArgs)
}

func TestLaunch_WrapsFailure(t *testing.T) {
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("Unable to find application\n"), errors.New("exit status 1")
	}
	t.Cleanup(func() { runCommand = orig })

	err := Launch(context.Background(), "XQuartz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open -a XQuartz")
}

func TestWaitReady_ReturnsImmediatelyWhenSocketPresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "X0"), nil, 0600))

	start := time.Now()
	WaitReady(context.Background(), dir, 5*time.Second)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitReady_ReturnsWhenSocketAppears(t *testing.T) {
	dir := t.TempDir()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "X0"), nil, 0600)
	}()

	start := time.Now()
	WaitReady(context.Background(), dir, 10*time.Second)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWaitReady_FixedDelayUpperBound(t *testing.T) {
	dir := t.TempDir()

	start := time.Now()
	WaitReady(context.Background(), dir, 200*time.Millisecond)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, 5*time.Second)
}

func TestWaitReady_HonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	WaitReady(ctx, t.TempDir(), 30*time.Second)
	assert.Less(t, time.Since(start), 5*time.Second)
}
