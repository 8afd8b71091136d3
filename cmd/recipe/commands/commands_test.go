package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/cmd/recipe/commands"
	"go.trai.ch/recipe/internal/adapters/logger"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/build"
	"go.trai.ch/recipe/internal/core/domain"
)

type mockApp struct {
	layoutOpts  app.LayoutOptions
	resolveOpts app.ResolveOptions
	installOpts app.InstallOptions
	cleanOpts   app.CleanOptions
	watched     bool
	locked      bool
	graph       *domain.Graph
	err         error
}

func (m *mockApp) Requirements(_ context.Context) ([]domain.Requirement, error) {
	if m.err != nil {
		return nil, m.err
	}
	return domain.Declared().Requirements(), nil
}

func (m *mockApp) Layout(_ context.Context, opts app.LayoutOptions) (domain.Folders, error) {
	m.layoutOpts = opts
	return domain.Folders{
		Source:     ".",
		Build:      "build/Debug",
		Generators: "build/Debug/generators",
		Includes:   "include",
	}, m.err
}

func (m *mockApp) Resolve(_ context.Context, opts app.ResolveOptions) (*domain.Graph, error) {
	m.resolveOpts = opts
	return m.graph, m.err
}

func (m *mockApp) Lock(_ context.Context, opts app.ResolveOptions) (*domain.Lockfile, error) {
	m.resolveOpts = opts
	m.locked = true
	return &domain.Lockfile{}, m.err
}

func (m *mockApp) Install(_ context.Context, opts app.InstallOptions) (*app.InstallResult, error) {
	m.installOpts = opts
	return &app.InstallResult{}, m.err
}

func (m *mockApp) Watch(_ context.Context, opts app.InstallOptions) error {
	m.installOpts = opts
	m.watched = true
	return m.err
}

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	m.cleanOpts = opts
	return m.err
}

type fakeConsole struct {
	format  logger.Format
	verbose bool
}

func (f *fakeConsole) SetFormat(format logger.Format) { f.format = format }
func (f *fakeConsole) SetVerbose(enable bool)         { f.verbose = enable }

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a, nil)
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Requirements(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "requirements")
		require.NoError(t, err)
		assert.Equal(t, ""+
			"boost/1.83.0 header_only=True, without_test=True, without_program_options=True, "+
			"without_graph=True, without_serialization=True, without_wave=True, without_log=False, without_random=False\n"+
			"cpr/1.11.2\n"+
			"drogon/1.9.10\n"+
			"nlohmann_json/3.12.0\n"+
			"spdlog/1.11.0\n"+
			"openssl/3.4.1\n"+
			"libiconv/1.18\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "requirements", "--json")
		require.NoError(t, err)

		var decoded []struct {
			Ref     string          `json:"ref"`
			Options map[string]bool `json:"options"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		require.Len(t, decoded, 7)
		assert.Equal(t, "cpr/1.11.2", decoded[1].Ref)
		assert.Empty(t, decoded[1].Options)
		assert.Len(t, decoded[0].Options, 8)
	})

	t.Run("error", func(t *testing.T) {
		_, err := execute(t, &mockApp{err: errors.New("simulated error")}, "requirements")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Layout(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "layout", "-s", "build_type=Debug", "-p", "ci", "--create")
	require.NoError(t, err)

	assert.True(t, m.layoutOpts.Create)
	assert.Equal(t, "ci", m.layoutOpts.Profile)
	assert.Equal(t, []string{"build_type=Debug"}, m.layoutOpts.Settings)
	assert.Contains(t, out, "generators  build/Debug/generators\n")
}

func TestCommands_Graph(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddPackage(&domain.ResolvedPackage{
		Ref:       domain.NewReference("openssl", "3.4.1"),
		PackageID: "9f8e7d6c5b4a3921",
		Options:   domain.OptionSetFromMap(map[string]bool{"shared": false}),
		Requires:  []string{"zlib"},
		Direct:    true,
	}))
	require.NoError(t, g.AddPackage(&domain.ResolvedPackage{
		Ref:       domain.NewReference("zlib", "1.3.1"),
		PackageID: "1a2b3c4d5e6f7081",
	}))

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, &mockApp{graph: g}, "graph")
		require.NoError(t, err)
		assert.Equal(t, ""+
			"openssl/3.4.1 9f8e7d6c5b4a3921 (direct)\n"+
			"    options: shared=False\n"+
			"    requires: zlib\n"+
			"zlib/1.3.1 1a2b3c4d5e6f7081\n", out)
	})

	t.Run("single package", func(t *testing.T) {
		out, err := execute(t, &mockApp{graph: g}, "graph", "zlib")
		require.NoError(t, err)
		assert.Equal(t, "zlib/1.3.1 1a2b3c4d5e6f7081\n", out)

		out, err = execute(t, &mockApp{graph: g}, "graph", "openssl")
		require.NoError(t, err)
		assert.Contains(t, out, "openssl/3.4.1 9f8e7d6c5b4a3921 (direct)\n")
		assert.Contains(t, out, "zlib/1.3.1 1a2b3c4d5e6f7081\n")
	})

	t.Run("unknown package", func(t *testing.T) {
		_, err := execute(t, &mockApp{graph: g}, "graph", "boost")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "package not found")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, &mockApp{graph: g}, "graph", "--json")
		require.NoError(t, err)

		var decoded []domain.LockedPackage
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "openssl/3.4.1", decoded[0].Ref)
		assert.True(t, decoded[0].Direct)
	})
}

func TestCommands_Install(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "install", "--locked", "-s", "arch=armv8", "-s", "build_type=Debug")
		require.NoError(t, err)
		assert.True(t, m.installOpts.Locked)
		assert.False(t, m.watched)
		assert.Equal(t, []string{"arch=armv8", "build_type=Debug"}, m.installOpts.Settings)
	})

	t.Run("watch", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "install", "--watch", "--profile", "release")
		require.NoError(t, err)
		assert.True(t, m.watched)
		assert.Equal(t, "release", m.installOpts.Profile)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		_, err := execute(t, &mockApp{err: domain.ErrInstallFailed}, "install")
		require.ErrorIs(t, err, domain.ErrInstallFailed)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "install", "boost")
		require.Error(t, err)
	})
}

func TestCommands_Lock(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "lock", "-s", "os=Windows")
	require.NoError(t, err)
	assert.True(t, m.locked)
	assert.Equal(t, []string{"os=Windows"}, m.resolveOpts.Settings)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default", args: []string{"clean"}, want: app.CleanOptions{Build: true}},
		{name: "cache", args: []string{"clean", "--cache"}, want: app.CleanOptions{Cache: true}},
		{name: "all", args: []string{"clean", "--all"}, want: app.CleanOptions{Build: true, Home: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.cleanOpts)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "recipe version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_GlobalFlags(t *testing.T) {
	console := &fakeConsole{format: logger.FormatAuto}
	cli := commands.New(&mockApp{}, console)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"version", "--log-format", "json", "-v"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, logger.FormatJSON, console.format)
	assert.True(t, console.verbose)
}
