package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ProfilesDirName is the directory, inside the workspace home, holding named profiles.
const ProfilesDirName = "profiles"

var _ ports.ProfileLoader = (*ProfileLoader)(nil)

// ProfileFile is the on-disk structure of a build profile.
type ProfileFile struct {
	Settings map[string]string `yaml:"settings"`
	Conf     struct {
		CMakeGenerator string `yaml:"cmake_generator"`
	} `yaml:"conf"`
}

// ProfileLoader implements ports.ProfileLoader.
// Bare names are looked up in the home profiles directory when no such file exists.
type ProfileLoader struct {
	Home string
}

// NewProfileLoader creates a ProfileLoader rooted at home.
func NewProfileLoader(home string) *ProfileLoader {
	return &ProfileLoader{Home: home}
}

// Load reads the profile at path.
func (p *ProfileLoader) Load(path string) (ports.Profile, error) {
	resolved := p.resolve(path)

	// #nosec G304 -- profiles are user supplied configuration files
	data, err := os.ReadFile(resolved)
	if err != nil {
		return ports.Profile{}, zerr.With(zerr.Wrap(err, domain.ErrProfileReadFailed.Error()), "profile", path)
	}

	var file ProfileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ports.Profile{}, zerr.With(zerr.Wrap(err, domain.ErrProfileParseFailed.Error()), "profile", path)
	}

	var settings domain.BuildSettings
	// Sorted keys make the first reported error deterministic.
	keys := make([]string, 0, len(file.Settings))
	for k := range file.Settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := settings.Set(k, strings.TrimSpace(file.Settings[k])); err != nil {
			return ports.Profile{}, zerr.With(err, "profile", path)
		}
	}

	return ports.Profile{
		Settings:       settings,
		CMakeGenerator: file.Conf.CMakeGenerator,
	}, nil
}

func (p *ProfileLoader) resolve(path string) string {
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return path
	}
	if p.Home == "" || strings.ContainsRune(path, filepath.Separator) || strings.ContainsRune(path, '/') {
		return path
	}
	return filepath.Join(p.Home, ProfilesDirName, path)
}
