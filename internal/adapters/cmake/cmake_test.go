package cmake_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/cmake"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
)

var linuxRelease = domain.BuildSettings{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}

func mustOptions(t *testing.T, opts ...domain.Option) domain.OptionSet {
	t.Helper()
	set, err := domain.NewOptionSet(opts...)
	require.NoError(t, err)
	return set
}

func fixtureGraph(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	packages := []*domain.ResolvedPackage{
		{
			Ref:       domain.NewReference("openssl", "3.4.1"),
			PackageID: "9f8e7d6c5b4a3921",
			Direct:    true,
			Options: mustOptions(t,
				domain.Option{Name: "shared", Value: false},
				domain.Option{Name: "fPIC", Value: true},
				domain.Option{Name: "no_zlib", Value: false},
			),
			Requires: []string{"zlib"},
			Info: domain.PackageInfo{
				Ref:        domain.NewReference("openssl", "3.4.1"),
				CMakeFile:  "OpenSSL",
				CMakeName:  "OpenSSL::SSL",
				Components: []string{"SSL", "Crypto"},
			},
		},
		{
			Ref:       domain.NewReference("nlohmann_json", "3.12.0"),
			PackageID: "0000aaaa0000bbbb",
			Direct:    true,
			Info: domain.PackageInfo{
				Ref:        domain.NewReference("nlohmann_json", "3.12.0"),
				HeaderOnly: true,
			},
		},
		{
			Ref:       domain.NewReference("zlib", "1.3.1"),
			PackageID: "1a2b3c4d5e6f7081",
			Options: mustOptions(t,
				domain.Option{Name: "shared", Value: false},
				domain.Option{Name: "fPIC", Value: true},
			),
			Info: domain.PackageInfo{
				Ref:       domain.NewReference("zlib", "1.3.1"),
				CMakeFile: "ZLIB",
				CMakeName: "ZLIB::ZLIB",
			},
		},
	}
	for _, p := range packages {
		require.NoError(t, g.AddPackage(p))
	}
	require.NoError(t, g.Validate())
	return g
}

func fixtureInput(t *testing.T, cmakeGenerator string) ports.GenerateInput {
	t.Helper()
	folders, err := domain.LayoutCMake.Folders(linuxRelease, cmakeGenerator)
	require.NoError(t, err)
	return ports.GenerateInput{
		Recipe:         domain.Declared(),
		Graph:          fixtureGraph(t),
		Settings:       linuxRelease,
		Folders:        folders,
		CMakeGenerator: cmakeGenerator,
		PackagesRoot:   "/home/dev/app/.recipe/p",
	}
}

func TestDeps_Generate(t *testing.T) {
	in := fixtureInput(t, "Unix Makefiles")
	files, err := cmake.NewDeps().Generate(context.Background(), in)
	require.NoError(t, err)

	gen := filepath.Join("build", "Release", "generators")
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
		assert.Equal(t, domain.GeneratorCMakeDeps, f.Generator)
	}
	assert.Equal(t, []string{
		filepath.Join(gen, "OpenSSLConfig.cmake"),
		filepath.Join(gen, "OpenSSLConfigVersion.cmake"),
		filepath.Join(gen, "openssl-release-x86_64-data.cmake"),
		filepath.Join(gen, "nlohmann_json-config.cmake"),
		filepath.Join(gen, "nlohmann_json-config-version.cmake"),
		filepath.Join(gen, "nlohmann_json-release-x86_64-data.cmake"),
		filepath.Join(gen, "ZLIBConfig.cmake"),
		filepath.Join(gen, "ZLIBConfigVersion.cmake"),
		filepath.Join(gen, "zlib-release-x86_64-data.cmake"),
	}, paths)

	g := goldie.New(t)
	for _, f := range files {
		g.Assert(t, "deps_"+filepath.Base(f.Path), f.Content)
	}
}

func TestDeps_ByteStable(t *testing.T) {
	in := fixtureInput(t, "Unix Makefiles")
	first, err := cmake.NewDeps().Generate(context.Background(), in)
	require.NoError(t, err)
	second, err := cmake.NewDeps().Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeps_Errors(t *testing.T) {
	t.Run("no graph", func(t *testing.T) {
		in := fixtureInput(t, "Unix Makefiles")
		in.Graph = nil
		_, err := cmake.NewDeps().Generate(context.Background(), in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate descriptor files")
	})

	t.Run("no build type", func(t *testing.T) {
		in := fixtureInput(t, "Unix Makefiles")
		in.Settings.BuildType = ""
		_, err := cmake.NewDeps().Generate(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrMissingBuildType)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := cmake.NewDeps().Generate(ctx, fixtureInput(t, "Unix Makefiles"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestConfigFileNames(t *testing.T) {
	config, version := cmake.ConfigFileNames("Boost")
	assert.Equal(t, "BoostConfig.cmake", config)
	assert.Equal(t, "BoostConfigVersion.cmake", version)

	config, version = cmake.ConfigFileNames("c-ares")
	assert.Equal(t, "c-ares-config.cmake", config)
	assert.Equal(t, "c-ares-config-version.cmake", version)
}

func TestToolchain_Generate(t *testing.T) {
	tests := []struct {
		name           string
		cmakeGenerator string
		prefix         string
		wantPaths      []string
	}{
		{
			name:           "single config",
			cmakeGenerator: "Unix Makefiles",
			prefix:         "toolchain_single",
			wantPaths: []string{
				filepath.Join("build", "Release", "generators", "recipe_toolchain.cmake"),
				filepath.Join("build", "Release", "generators", "CMakePresets.json"),
				"CMakeUserPresets.json",
			},
		},
		{
			name:           "multi config",
			cmakeGenerator: "Ninja Multi-Config",
			prefix:         "toolchain_multi",
			wantPaths: []string{
				filepath.Join("build", "generators", "recipe_toolchain.cmake"),
				filepath.Join("build", "generators", "CMakePresets.json"),
				"CMakeUserPresets.json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := cmake.NewToolchain().Generate(context.Background(), fixtureInput(t, tt.cmakeGenerator))
			require.NoError(t, err)

			g := goldie.New(t)
			var paths []string
			for _, f := range files {
				paths = append(paths, f.Path)
				assert.Equal(t, domain.GeneratorCMakeToolchain, f.Generator)
				g.Assert(t, tt.prefix+"_"+filepath.Base(f.Path), f.Content)
			}
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}

func TestToolchain_DefaultsGeneratorFromSettings(t *testing.T) {
	in := fixtureInput(t, "Unix Makefiles")
	in.CMakeGenerator = ""
	files, err := cmake.NewToolchain().Generate(context.Background(), in)
	require.NoError(t, err)

	var presets struct {
		ConfigurePresets []struct {
			Generator string `json:"generator"`
		} `json:"configurePresets"`
	}
	require.NoError(t, json.Unmarshal(files[1].Content, &presets))
	require.Len(t, presets.ConfigurePresets, 1)
	assert.Equal(t, "Unix Makefiles", presets.ConfigurePresets[0].Generator)
}

func TestRegistry_Lookup(t *testing.T) {
	r := cmake.NewRegistry(cmake.NewDeps(), cmake.NewToolchain())

	for _, name := range []domain.Generator{domain.GeneratorCMakeDeps, domain.GeneratorCMakeToolchain} {
		g, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, g.Name())
	}

	_, ok := r.Lookup(domain.Generator("MSBuildDeps"))
	assert.False(t, ok)
}
