package check

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayVariable(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv("DISPLAY", "")
		result := DisplayVariable().Run(context.Background())
		assert.False(t, result.Passed)
		assert.NotEmpty(t, result.Hint)
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv("DISPLAY", "host.docker.internal:0")
		result := DisplayVariable().Run(context.Background())
		assert.True(t, result.Passed)
		assert.Contains(t, result.Detail, "host.docker.internal:0")
	})
}

func TestX11Socket(t *testing.T) {
	t.Run("no sockets", func(t *testing.T) {
		result := X11Socket(t.TempDir()).Run(context.Background())
		assert.False(t, result.Passed)
	})

	t.Run("socket present", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "X0"), nil, 0600))

		result := X11Socket(dir).Run(context.Background())
		assert.True(t, result.Passed)
		assert.Contains(t, result.Detail, "1 socket(s)")
	})
}

func TestSystemPackages(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		orig := runCommand
		runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return []byte("Status: install ok installed\n"), nil
		}
		t.Cleanup(func() { runCommand = orig })

		result := SystemPackages([]string{"libgl1-mesa-glx"}).Run(context.Background())
		assert.True(t, result.Passed)
	})

	t.Run("missing package", func(t *testing.T) {
		orig := runCommand
		runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		}
		t.Cleanup(func() { runCommand = orig })

		result := SystemPackages([]string{"libgl1-mesa-glx", "fonts-dejavu-core"}).Run(context.Background())
		assert.False(t, result.Passed)
		assert.Contains(t, result.Detail, "libgl1-mesa-glx")
		assert.Contains(t, result.Hint, "apt-get install")
	})

	t.Run("no dpkg on non-Debian systems", func(t *testing.T) {
		orig := runCommand
		runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, &exec.Error{Name: "dpkg", Err: exec.ErrNotFound}
		}
		t.Cleanup(func() { runCommand = orig })

		result := SystemPackages([]string{"libgl1-mesa-glx"}).Run(context.Background())
		assert.True(t, result.Passed)
		assert.Contains(t, result.Detail, "skipped")
	})
}

func TestReport_Passed(t *testing.T) {
	report := &Report{Results: []Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: true},
	}}
	assert.True(t, report.Passed())

	report.Results = append(report.Results, Result{Name: "c", Passed: false})
	assert.False(t, report.Passed())
}

func TestReport_Render(t *testing.T) {
	report := &Report{Results: []Result{
		{Name: "DISPLAY variable", Passed: true, Detail: "DISPLAY=:0"},
		{Name: "X11 socket", Passed: false, Detail: "no X server sockets found", Hint: "start the X server"},
	}}

	var buf bytes.Buffer
	report.Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "DISPLAY variable")
	assert.Contains(t, out, "no X server sockets found")
	assert.Contains(t, out, "hint: start the X server")
	assert.Contains(t, out, "1/2 checks passed")
}

func TestRunAll(t *testing.T) {
	t.Setenv("DISPLAY", "host.docker.internal:0")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "X0"), nil, 0600))

	report := RunAll(context.Background(), []Check{DisplayVariable(), X11Socket(dir)})
	require.Len(t, report.Results, 2)
	assert.True(t, report.Passed())
}

func TestTroubleshootingGuide(t *testing.T) {
	assert.Contains(t, TroubleshootingGuide("darwin"), "xquartz")
	assert.Contains(t, TroubleshootingGuide("linux"), "xhost +local:docker")
	assert.Contains(t, TroubleshootingGuide("windows"), "VcXsrv")
}
