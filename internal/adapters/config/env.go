package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// Env is the process configuration read from RECIPE_* environment variables.
type Env struct {
	Home         string        `env:"RECIPE_HOME" envDefault:".recipe"`
	IndexURL     string        `env:"RECIPE_INDEX_URL"`
	IndexTimeout time.Duration `env:"RECIPE_INDEX_TIMEOUT" envDefault:"30s"`
	IndexRetries int           `env:"RECIPE_INDEX_RETRIES" envDefault:"3"`
	Jobs         int           `env:"RECIPE_JOBS" envDefault:"4"`
	Profile      string        `env:"RECIPE_PROFILE"`
	LogFormat    string        `env:"RECIPE_LOG_FORMAT" envDefault:"auto"`
	Verbose      bool          `env:"RECIPE_VERBOSE"`

	Settings       EnvSettings
	CMakeGenerator string `env:"RECIPE_CMAKE_GENERATOR"`
}

// EnvSettings are per-axis build setting overrides.
type EnvSettings struct {
	OS              string `env:"RECIPE_OS"`
	Compiler        string `env:"RECIPE_COMPILER"`
	CompilerVersion string `env:"RECIPE_COMPILER_VERSION"`
	BuildType       string `env:"RECIPE_BUILD_TYPE"`
	Arch            string `env:"RECIPE_ARCH"`
}

// BuildSettings converts the overrides into a partial domain.BuildSettings.
func (s EnvSettings) BuildSettings() domain.BuildSettings {
	return domain.BuildSettings{
		OS:              s.OS,
		Compiler:        s.Compiler,
		CompilerVersion: s.CompilerVersion,
		BuildType:       s.BuildType,
		Arch:            s.Arch,
	}
}

// LoadEnv reads the optional .env file in dir and parses it overlaid with the process environment.
// Variables present in the process environment win over the file. The file is never exported
// into the process, so every call sees its current contents.
func LoadEnv(dir string) (Env, error) {
	dotenv := filepath.Join(dir, domain.EnvFileName)
	vars, err := godotenv.Read(dotenv)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Env{}, zerr.With(zerr.Wrap(err, domain.ErrEnvParseFailed.Error()), "path", dotenv)
		}
		vars = make(map[string]string)
	}
	maps.Copy(vars, env.ToMap(os.Environ()))

	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Env{}, zerr.Wrap(err, domain.ErrEnvParseFailed.Error())
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	if cfg.IndexRetries < 0 {
		cfg.IndexRetries = 0
	}
	return cfg, nil
}

// HomeDir returns the absolute workspace home for a project root.
func (e Env) HomeDir(root string) string {
	if filepath.IsAbs(e.Home) {
		return e.Home
	}
	return filepath.Join(root, e.Home)
}
