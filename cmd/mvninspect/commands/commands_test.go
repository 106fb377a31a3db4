package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mvninspect/cmd/mvninspect/commands"
	"go.trai.ch/mvninspect/internal/app"
	"go.trai.ch/mvninspect/internal/build"
	"go.trai.ch/mvninspect/internal/core/domain"
)

type mockApp struct {
	inspectFunc func(ctx context.Context, opts app.InspectOptions) error
	watchFunc   func(ctx context.Context, opts app.InspectOptions) error
	cleaned     bool
}

func (m *mockApp) Inspect(ctx context.Context, opts app.InspectOptions) error {
	if m.inspectFunc != nil {
		return m.inspectFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.InspectOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(_ context.Context) error {
	m.cleaned = true
	return nil
}

// workspace is a Maven home with a settings file and a project descriptor.
type workspace struct {
	home     string
	settings string
	pom      string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		home: filepath.Join(dir, "maven"),
		pom:  filepath.Join(dir, "project", domain.PomFileName),
	}
	ws.settings = domain.DefaultSettingsPath(ws.home)
	for _, f := range []string{ws.settings, ws.pom} {
		require.NoError(t, os.MkdirAll(filepath.Dir(f), domain.DirPerm))
		require.NoError(t, os.WriteFile(f, []byte("<x/>"), domain.FilePerm))
	}
	t.Setenv(domain.MavenHomeEnv, "")
	return ws
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Inspect(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		ws := newWorkspace(t)
		var captured app.InspectOptions
		mock := &mockApp{inspectFunc: func(_ context.Context, opts app.InspectOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock,
			"-s", ws.pom, "-m", ws.home, "-l", "/tmp/repo",
			"--format", "yaml", "--offline", "--no-cache", "--timings", "--log-json")
		require.NoError(t, err)

		assert.Equal(t, app.InspectOptions{
			Descriptor:      ws.pom,
			SettingsFile:    ws.settings,
			LocalRepository: "/tmp/repo",
			Format:          "yaml",
			Offline:         true,
			NoCache:         true,
			Timings:         true,
			LogJSON:         true,
		}, captured)
	})

	t.Run("maven home from environment", func(t *testing.T) {
		ws := newWorkspace(t)
		t.Setenv(domain.MavenHomeEnv, ws.home)
		var captured app.InspectOptions
		mock := &mockApp{inspectFunc: func(_ context.Context, opts app.InspectOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock, "--maven-script", ws.pom, "--maven-home", "/does/not/exist")
		require.NoError(t, err)
		assert.Equal(t, ws.settings, captured.SettingsFile)
		assert.Equal(t, "auto", captured.Format)
	})

	t.Run("explicit settings file", func(t *testing.T) {
		ws := newWorkspace(t)
		custom := filepath.Join(filepath.Dir(ws.pom), "settings.xml")
		require.NoError(t, os.WriteFile(custom, []byte("<settings/>"), domain.FilePerm))
		var captured app.InspectOptions
		mock := &mockApp{inspectFunc: func(_ context.Context, opts app.InspectOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock, "-s", ws.pom, "-m", ws.home, "-u", custom)
		require.NoError(t, err)
		assert.Equal(t, custom, captured.SettingsFile)
	})

	t.Run("flags from prefixed environment", func(t *testing.T) {
		ws := newWorkspace(t)
		t.Setenv("MVNINSPECT_MAVEN_SCRIPT", ws.pom)
		t.Setenv("MVNINSPECT_MAVEN_HOME", ws.home)
		t.Setenv("MVNINSPECT_NO_CACHE", "true")
		var captured app.InspectOptions
		mock := &mockApp{inspectFunc: func(_ context.Context, opts app.InspectOptions) error {
			captured = opts
			return nil
		}}

		_, err := execute(t, mock)
		require.NoError(t, err)
		assert.Equal(t, ws.pom, captured.Descriptor)
		assert.True(t, captured.NoCache)
	})

	t.Run("returns error on inspect failure", func(t *testing.T) {
		ws := newWorkspace(t)
		mock := &mockApp{inspectFunc: func(context.Context, app.InspectOptions) error {
			return errors.New("simulated error")
		}}

		out, err := execute(t, mock, "-s", ws.pom, "-m", ws.home)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
		assert.NotContains(t, out, "Usage:")
	})
}

func TestCommands_Inspect_ConfigurationErrors(t *testing.T) {
	ws := newWorkspace(t)
	dir := filepath.Dir(ws.pom)
	txt := filepath.Join(dir, "pom.txt")
	require.NoError(t, os.WriteFile(txt, []byte("<x/>"), domain.FilePerm))
	emptyHome := t.TempDir()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing descriptor flag", []string{"-m", ws.home}, domain.ErrMissingDescriptor},
		{"descriptor does not exist", []string{"-s", filepath.Join(dir, "nope.xml"), "-m", ws.home}, domain.ErrDescriptorNotFound},
		{"descriptor is a directory", []string{"-s", dir, "-m", ws.home}, domain.ErrDescriptorNotFile},
		{"descriptor extension", []string{"-s", txt, "-m", ws.home}, domain.ErrDescriptorExtension},
		{"maven home unresolved", []string{"-s", ws.pom}, domain.ErrMavenHomeUnresolved},
		{"settings not found", []string{"-s", ws.pom, "-m", emptyHome}, domain.ErrSettingsNotFound},
		{"unknown format", []string{"-s", ws.pom, "-m", ws.home, "--format", "xml"}, domain.ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{inspectFunc: func(context.Context, app.InspectOptions) error {
				panic("should not be called")
			}}

			out, err := execute(t, mock, tt.args...)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidArguments.Error())
			assert.ErrorContains(t, err, tt.want.Error())
			assert.Contains(t, out, "Usage:")
		})
	}
}

func TestCommands_Inspect_UsageGoesToErrorStream(t *testing.T) {
	ws := newWorkspace(t)
	cli := commands.New(&mockApp{})
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cli.SetOutput(stdout, stderr)
	cli.SetArgs([]string{"-m", ws.home})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestCommands_Help(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--maven-script")
	assert.Contains(t, out, "--user-setting-file")
}

func TestCommands_Watch(t *testing.T) {
	ws := newWorkspace(t)
	var captured app.InspectOptions
	mock := &mockApp{watchFunc: func(_ context.Context, opts app.InspectOptions) error {
		captured = opts
		return nil
	}}

	_, err := execute(t, mock, "watch", "-s", ws.pom, "-m", ws.home, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, ws.pom, captured.Descriptor)
	assert.Equal(t, "json", captured.Format)
}

func TestCommands_Clean(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, mock, "clean")
	require.NoError(t, err)
	assert.True(t, mock.cleaned)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
