// Package app implements the application layer for recipe.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/recipe/internal/adapters/config" //nolint:depguard // settings layering lives with the config adapter
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/recipe/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Config is the process configuration the use cases read.
type Config struct {
	// Root is the absolute project root holding recipe.yaml.
	Root string
	// Home is the absolute workspace home.
	Home string
	// Profile is the default profile name or path.
	Profile string
	// Settings are per-axis overrides from the environment.
	Settings domain.BuildSettings
	// CMakeGenerator overrides the CMake generator from the profile.
	CMakeGenerator string
}

// ConfigFromEnv converts the environment configuration for a project root.
func ConfigFromEnv(env config.Env, root string) Config {
	return Config{
		Root:           root,
		Home:           env.HomeDir(root),
		Profile:        env.Profile,
		Settings:       env.Settings.BuildSettings(),
		CMakeGenerator: env.CMakeGenerator,
	}
}

// App represents the main application logic.
type App struct {
	recipes    ports.RecipeLoader
	profiles   ports.ProfileLoader
	resolver   *resolver.Resolver
	generators ports.GeneratorSet
	writer     ports.FileWriter
	locks      ports.LockStore
	watcher    ports.Watcher
	logger     ports.Logger
	config     Config
	reload     func() (Runtime, error)
}

// Runtime is the part of the App derived from the environment configuration.
// Nil components are kept as they are.
type Runtime struct {
	Config   Config
	Profiles ports.ProfileLoader
	Resolver *resolver.Resolver
}

// New creates a new App instance.
func New(
	recipes ports.RecipeLoader,
	profiles ports.ProfileLoader,
	res *resolver.Resolver,
	generators ports.GeneratorSet,
	writer ports.FileWriter,
	locks ports.LockStore,
	watcher ports.Watcher,
	log ports.Logger,
	cfg Config,
) *App {
	return &App{
		recipes:    recipes,
		profiles:   profiles,
		resolver:   res,
		generators: generators,
		writer:     writer,
		locks:      locks,
		watcher:    watcher,
		logger:     log,
		config:     cfg,
	}
}

// WithReload sets how Watch rebuilds its configuration after a change.
func (a *App) WithReload(fn func() (Runtime, error)) *App {
	a.reload = fn
	return a
}

// SettingsOptions selects the build settings of a run.
type SettingsOptions struct {
	// Profile overrides the configured profile.
	Profile string
	// Settings are key=value assignments with the highest priority.
	Settings []string
}

// LayoutOptions configuration for the Layout method.
type LayoutOptions struct {
	SettingsOptions
	Create bool
}

// ResolveOptions configuration for the Resolve and Lock methods.
type ResolveOptions struct {
	SettingsOptions
}

// InstallOptions configuration for the Install and Watch methods.
type InstallOptions struct {
	SettingsOptions
	// Locked verifies the resolved graph against recipe.lock and leaves it untouched.
	Locked bool
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Build bool
	Cache bool
	Home  bool
}

// InstallResult summarizes an install run.
type InstallResult struct {
	Graph    *domain.Graph
	Settings domain.BuildSettings
	Folders  domain.Folders
	Files    []domain.GeneratedFile
	Written  int
}

// Requirements returns the declared requirements in declaration order.
func (a *App) Requirements(_ context.Context) ([]domain.Requirement, error) {
	recipe, err := a.recipes.Load(a.config.Root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load recipe")
	}
	return recipe.Requirements(), nil
}

// Layout computes the folder convention and optionally creates the folders.
func (a *App) Layout(_ context.Context, opts LayoutOptions) (domain.Folders, error) {
	recipe, err := a.recipes.Load(a.config.Root)
	if err != nil {
		return domain.Folders{}, zerr.Wrap(err, "failed to load recipe")
	}
	settings, cmakeGenerator, err := a.settings(opts.SettingsOptions)
	if err != nil {
		return domain.Folders{}, err
	}

	folders, err := recipe.LayoutPolicy().Folders(settings, cmakeGenerator)
	if err != nil {
		return domain.Folders{}, err
	}
	if opts.Create {
		if err := a.writer.EnsureDirs(a.config.Root, folders.Build, folders.Generators); err != nil {
			return domain.Folders{}, err
		}
	}
	return folders, nil
}

// Resolve resolves the recipe into a dependency graph.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) (*domain.Graph, error) {
	p, err := a.resolve(ctx, opts.SettingsOptions)
	if err != nil {
		return nil, err
	}
	return p.graph, nil
}

// Lock resolves the recipe and writes recipe.lock.
func (a *App) Lock(ctx context.Context, opts ResolveOptions) (*domain.Lockfile, error) {
	p, err := a.resolve(ctx, opts.SettingsOptions)
	if err != nil {
		return nil, err
	}

	lock := domain.NewLockfile(p.graph, p.settings)
	if err := a.locks.Write(a.config.Root, lock); err != nil {
		return nil, err
	}
	a.logger.Info(fmt.Sprintf("locked %d packages in %s", len(lock.Packages), domain.LockFileName))
	return lock, nil
}

// Install resolves the recipe, creates the layout and runs the recipe's generators in order.
func (a *App) Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	result, err := a.install(ctx, opts)
	if err != nil {
		return nil, errors.Join(domain.ErrInstallFailed, err)
	}
	return result, nil
}

func (a *App) install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	p, err := a.resolve(ctx, opts.SettingsOptions)
	if err != nil {
		return nil, err
	}
	recipe, graph, settings := p.recipe, p.graph, p.settings

	lock := domain.NewLockfile(graph, settings)
	if opts.Locked {
		locked, err := a.locks.Read(a.config.Root)
		if err != nil {
			return nil, err
		}
		if locked == nil {
			return nil, domain.ErrLockMissing
		}
		if err := locked.Verify(lock); err != nil {
			return nil, err
		}
	}

	folders, err := recipe.LayoutPolicy().Folders(settings, p.cmakeGenerator)
	if err != nil {
		return nil, err
	}
	if err := a.writer.EnsureDirs(a.config.Root, folders.Build, folders.Generators); err != nil {
		return nil, err
	}

	in := ports.GenerateInput{
		Recipe:         recipe,
		Graph:          graph,
		Settings:       settings,
		Folders:        folders,
		CMakeGenerator: p.cmakeGenerator,
		PackagesRoot:   domain.DefaultPackagesPath(a.config.Home),
	}

	var files []domain.GeneratedFile
	for _, name := range recipe.Generators {
		gen, ok := a.generators.Lookup(name)
		if !ok {
			return nil, zerr.With(domain.ErrUnknownGenerator, "generator", name.String())
		}
		out, err := gen.Generate(ctx, in)
		if err != nil {
			return nil, zerr.With(err, "generator", name.String())
		}
		files = append(files, out...)
	}

	written, err := a.writer.WriteFiles(a.config.Root, files)
	if err != nil {
		return nil, err
	}

	if !opts.Locked {
		if err := a.locks.Write(a.config.Root, lock); err != nil {
			return nil, err
		}
	}

	a.logger.Info(fmt.Sprintf("installed %d packages, %d of %d files updated in %s",
		graph.Len(), written, len(files), folders.Generators))

	return &InstallResult{
		Graph:    graph,
		Settings: settings,
		Folders:  folders,
		Files:    files,
		Written:  written,
	}, nil
}

// Watch installs once, then reinstalls whenever the recipe, the profile or .env change.
// It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, opts InstallOptions) error {
	if _, err := a.Install(ctx, opts); err != nil {
		a.logger.Error(err)
	}

	paths := a.watchPaths(opts.SettingsOptions)
	if err := a.watcher.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info(fmt.Sprintf("watching %d files for changes", len(paths)))

	for event := range a.watcher.Events() {
		for _, p := range event.Paths {
			a.logger.Info("changed: " + a.relative(p))
		}
		if a.reload != nil {
			rt, err := a.reload()
			if err != nil {
				a.logger.Error(err)
				continue
			}
			a.apply(rt)
		}
		if _, err := a.Install(ctx, opts); err != nil {
			a.logger.Error(err)
		}
	}
	return nil
}

func (a *App) apply(rt Runtime) {
	a.config = rt.Config
	if rt.Profiles != nil {
		a.profiles = rt.Profiles
	}
	if rt.Resolver != nil {
		a.resolver = rt.Resolver
	}
}

func (a *App) watchPaths(opts SettingsOptions) []string {
	paths := []string{
		filepath.Join(a.config.Root, domain.RecipeFileName),
		filepath.Join(a.config.Root, domain.EnvFileName),
	}
	if profile := a.profileName(opts); profile != "" {
		if !filepath.IsAbs(profile) {
			if _, err := os.Stat(filepath.Join(a.config.Root, profile)); err != nil {
				profile = filepath.Join(a.config.Home, config.ProfilesDirName, profile)
			} else {
				profile = filepath.Join(a.config.Root, profile)
			}
		}
		paths = append(paths, profile)
	}
	return paths
}

func (a *App) relative(path string) string {
	if rel, err := filepath.Rel(a.config.Root, path); err == nil {
		return rel
	}
	return path
}

// Clean removes the build folder, the index cache or the whole workspace home.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return
		}
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove "+name), "path", path))
			return
		}
		a.logger.Info("removed " + name)
	}

	if options.Build {
		remove(filepath.Join(a.config.Root, domain.BuildDirName), "build folder")
	}

	if options.Home {
		remove(a.config.Home, "workspace home")
	} else if options.Cache {
		remove(domain.DefaultIndexCachePath(a.config.Home), "index cache")
	}

	return errs
}

func (a *App) profileName(opts SettingsOptions) string {
	if opts.Profile != "" {
		return opts.Profile
	}
	return a.config.Profile
}

// settings layers the command line, the environment, the profile and the host defaults.
func (a *App) settings(opts SettingsOptions) (domain.BuildSettings, string, error) {
	var profile ports.Profile
	if name := a.profileName(opts); name != "" {
		var err error
		profile, err = a.profiles.Load(name)
		if err != nil {
			return domain.BuildSettings{}, "", err
		}
	}

	settings, err := config.NewSettingsBuilder().
		WithAssignments(opts.Settings).
		WithLayer(a.config.Settings).
		WithLayer(profile.Settings).
		WithLayer(domain.HostSettings()).
		Build()
	if err != nil {
		return domain.BuildSettings{}, "", err
	}

	cmakeGenerator := a.config.CMakeGenerator
	if cmakeGenerator == "" {
		cmakeGenerator = profile.CMakeGenerator
	}
	if cmakeGenerator == "" {
		cmakeGenerator = domain.DefaultCMakeGenerator(settings)
	}
	return settings, cmakeGenerator, nil
}

// plan is a resolved recipe with the settings it was resolved for.
type plan struct {
	recipe         *domain.Recipe
	graph          *domain.Graph
	settings       domain.BuildSettings
	cmakeGenerator string
}

func (a *App) resolve(ctx context.Context, opts SettingsOptions) (*plan, error) {
	recipe, err := a.recipes.Load(a.config.Root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load recipe")
	}
	settings, cmakeGenerator, err := a.settings(opts)
	if err != nil {
		return nil, err
	}

	graph, err := a.resolver.Resolve(ctx, recipe, settings)
	if err != nil {
		return nil, errors.Join(domain.ErrResolutionFailed, err)
	}
	return &plan{
		recipe:         recipe,
		graph:          graph,
		settings:       settings,
		cmakeGenerator: cmakeGenerator,
	}, nil
}
