package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/index"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/recipe/internal/core/ports/mocks"
	"go.trai.ch/recipe/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

var linuxRelease = domain.BuildSettings{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}

type resolverTestMocks struct {
	index  *mocks.MockPackageIndex
	logger *mocks.MockLogger
	tracer *mocks.MockTracer
}

func setupMocks(t *testing.T) resolverTestMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := resolverTestMocks{
		index:  mocks.NewMockPackageIndex(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		tracer: mocks.NewMockTracer(ctrl),
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	return m
}

// serveCatalog answers lookups from a fixed set of packages.
func serveCatalog(m resolverTestMocks, packages ...*domain.PackageInfo) {
	byRef := make(map[domain.Reference]*domain.PackageInfo, len(packages))
	for _, p := range packages {
		byRef[p.Ref] = p
	}
	m.index.EXPECT().Lookup(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ref domain.Reference) (*domain.PackageInfo, error) {
			if p, ok := byRef[ref]; ok {
				return p, nil
			}
			return nil, domain.ErrVersionNotFound
		},
	).AnyTimes()
}

func info(ref string, options map[string]bool, requires ...domain.Dependency) *domain.PackageInfo {
	r, err := domain.ParseReference(ref)
	if err != nil {
		panic(err)
	}
	keys := make([]domain.Option, 0, len(options))
	for _, name := range []string{"shared", "fPIC", "x"} {
		if v, ok := options[name]; ok {
			keys = append(keys, domain.Option{Name: name, Value: v})
		}
	}
	defaults, err := domain.NewOptionSet(keys...)
	if err != nil {
		panic(err)
	}
	return &domain.PackageInfo{Ref: r, Defaults: defaults, Requires: requires}
}

func dep(ref string, options map[string]bool) domain.Dependency {
	r, err := domain.ParseReference(ref)
	if err != nil {
		panic(err)
	}
	return domain.Dependency{Ref: r, Options: domain.OptionSetFromMap(options)}
}

func recipeOf(reqs ...domain.Requirement) *domain.Recipe {
	return &domain.Recipe{
		Name:       "app",
		Settings:   domain.SettingAxes(),
		Generators: []domain.Generator{domain.GeneratorCMakeDeps},
		Requires:   reqs,
		Layout:     domain.LayoutCMake,
	}
}

func requirement(ref string, options map[string]bool) domain.Requirement {
	d := dep(ref, options)
	return domain.Requirement{Ref: d.Ref, Options: d.Options}
}

func names(g *domain.Graph) []string {
	var out []string
	for p := range g.Packages() {
		out = append(out, p.Ref.Name)
	}
	return out
}

func TestResolve_DeclaredRecipe(t *testing.T) {
	m := setupMocks(t)
	builtin, err := index.NewBuiltin()
	require.NoError(t, err)

	r := resolver.NewResolver(builtin, m.logger, m.tracer, 4)
	g, err := r.Resolve(context.Background(), domain.Declared(), linuxRelease)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"boost", "cpr", "drogon", "nlohmann_json", "spdlog", "openssl", "libiconv",
		"zlib", "bzip2", "libcurl", "trantor", "jsoncpp", "fmt", "c-ares",
	}, names(g))

	boost, ok := g.Get("boost")
	require.True(t, ok)
	assert.True(t, boost.Direct)
	for key, want := range domain.DeclaredCollectionOptions().OptionSet().Map() {
		got, ok := boost.Options.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	shared, _ := boost.Options.Get("shared")
	assert.False(t, shared)

	curl, ok := g.Get("libcurl")
	require.True(t, ok)
	assert.False(t, curl.Direct)
	ssl, _ := curl.Options.Get("with_ssl_openssl")
	assert.True(t, ssl)

	for p := range g.Packages() {
		assert.Len(t, p.PackageID, 16, p.Ref.String())
	}
}

func TestResolve_PackageIDs(t *testing.T) {
	m := setupMocks(t)
	builtin, err := index.NewBuiltin()
	require.NoError(t, err)
	r := resolver.NewResolver(builtin, m.logger, m.tracer, 2)

	release, err := r.Resolve(context.Background(), domain.Declared(), linuxRelease)
	require.NoError(t, err)

	debugSettings := linuxRelease
	debugSettings.BuildType = "Debug"
	debug, err := r.Resolve(context.Background(), domain.Declared(), debugSettings)
	require.NoError(t, err)

	id := func(g *domain.Graph, name string) string {
		p, ok := g.Get(name)
		require.True(t, ok, name)
		return p.PackageID
	}

	// Header-only packages do not depend on settings.
	assert.Equal(t, id(release, "boost"), id(debug, "boost"))
	assert.Equal(t, id(release, "nlohmann_json"), id(debug, "nlohmann_json"))
	assert.NotEqual(t, id(release, "cpr"), id(debug, "cpr"))

	again, err := r.Resolve(context.Background(), domain.Declared(), linuxRelease)
	require.NoError(t, err)
	for p := range release.Packages() {
		assert.Equal(t, p.PackageID, id(again, p.Ref.Name))
	}
}

func TestResolve_DeterministicAcrossJobs(t *testing.T) {
	builtin, err := index.NewBuiltin()
	require.NoError(t, err)

	var want []string
	for _, jobs := range []int{1, 3, 16} {
		m := setupMocks(t)
		g, err := resolver.NewResolver(builtin, m.logger, m.tracer, jobs).
			Resolve(context.Background(), domain.Declared(), linuxRelease)
		require.NoError(t, err)
		if want == nil {
			want = names(g)
			continue
		}
		assert.Equal(t, want, names(g), "jobs=%d", jobs)
	}
}

func TestResolve_InvalidSettings(t *testing.T) {
	m := setupMocks(t)
	r := resolver.NewResolver(m.index, m.logger, m.tracer, 1)

	settings := linuxRelease
	settings.Arch = ""
	_, err := r.Resolve(context.Background(), domain.Declared(), settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing build setting")
}

func TestResolve_DirectPinOverridesTransitive(t *testing.T) {
	m := setupMocks(t)
	serveCatalog(m,
		info("app_lib/1.0", nil, dep("zlib/1.2.13", nil)),
		info("zlib/1.3.1", map[string]bool{"shared": false}),
	)
	m.logger.EXPECT().Warn("direct pin zlib/1.3.1 overrides zlib/1.2.13 requested by app_lib").Times(1)

	r := resolver.NewResolver(m.index, m.logger, m.tracer, 2)
	g, err := r.Resolve(context.Background(), recipeOf(
		requirement("app_lib/1.0", nil),
		requirement("zlib/1.3.1", nil),
	), linuxRelease)
	require.NoError(t, err)

	zlib, ok := g.Get("zlib")
	require.True(t, ok)
	assert.Equal(t, "1.3.1", zlib.Ref.Version)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		packages []*domain.PackageInfo
		recipe   *domain.Recipe
		wantErr  string
		wantMeta map[string]any
	}{
		{
			name:     "unknown version",
			packages: []*domain.PackageInfo{info("a/1.0", nil, dep("b/2.0", nil))},
			recipe:   recipeOf(requirement("a/1.0", nil)),
			wantErr:  "package version not found in index",
			wantMeta: map[string]any{"required_by": "a"},
		},
		{
			name: "transitive version conflict",
			packages: []*domain.PackageInfo{
				info("a/1.0", nil, dep("c/1.0", nil)),
				info("b/1.0", nil, dep("c/2.0", nil)),
				info("c/1.0", nil),
				info("c/2.0", nil),
			},
			recipe:   recipeOf(requirement("a/1.0", nil), requirement("b/1.0", nil)),
			wantErr:  "version conflict",
			wantMeta: map[string]any{"package": "c", "a": "c/1.0", "b": "c/2.0"},
		},
		{
			name: "dependents disagree on an option",
			packages: []*domain.PackageInfo{
				info("a/1.0", nil, dep("c/1.0", map[string]bool{"shared": true})),
				info("b/1.0", nil, dep("c/1.0", map[string]bool{"shared": false})),
				info("c/1.0", map[string]bool{"shared": false}),
			},
			recipe:   recipeOf(requirement("a/1.0", nil), requirement("b/1.0", nil)),
			wantErr:  "option conflict",
			wantMeta: map[string]any{"package": "c", "option": "shared", "a": "true", "b": "false"},
		},
		{
			name: "declared option contradicts dependent",
			packages: []*domain.PackageInfo{
				info("a/1.0", nil, dep("c/1.0", map[string]bool{"shared": true})),
				info("c/1.0", map[string]bool{"shared": false}),
			},
			recipe:   recipeOf(requirement("a/1.0", nil), requirement("c/1.0", map[string]bool{"shared": false})),
			wantErr:  "option conflict",
			wantMeta: map[string]any{"declared": "false", "a": "true"},
		},
		{
			name:     "declared option not in schema",
			packages: []*domain.PackageInfo{info("a/1.0", map[string]bool{"shared": false})},
			recipe:   recipeOf(requirement("a/1.0", map[string]bool{"with_magic": true})),
			wantErr:  "unknown option",
			wantMeta: map[string]any{"option": "with_magic", "requested_by": "recipe"},
		},
		{
			name: "requested option not in schema",
			packages: []*domain.PackageInfo{
				info("a/1.0", nil, dep("c/1.0", map[string]bool{"x": true})),
				info("c/1.0", map[string]bool{"shared": false}),
			},
			recipe:   recipeOf(requirement("a/1.0", nil)),
			wantErr:  "unknown option",
			wantMeta: map[string]any{"package": "c/1.0", "requested_by": "a"},
		},
		{
			name: "cycle",
			packages: []*domain.PackageInfo{
				info("a/1.0", nil, dep("b/1.0", nil)),
				info("b/1.0", nil, dep("a/1.0", nil)),
			},
			recipe:   recipeOf(requirement("a/1.0", nil)),
			wantErr:  "cycle detected",
			wantMeta: map[string]any{"cycle": "a -> b -> a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupMocks(t)
			serveCatalog(m, tt.packages...)

			r := resolver.NewResolver(m.index, m.logger, m.tracer, 4)
			_, err := r.Resolve(context.Background(), tt.recipe, linuxRelease)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			meta := metadata(err)
			for k, v := range tt.wantMeta {
				assert.Equal(t, v, meta[k], "metadata %s", k)
			}
		})
	}
}
