package domain

import (
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Setting axis keys.
const (
	SettingOS              = "os"
	SettingCompiler        = "compiler"
	SettingCompilerVersion = "compiler.version"
	SettingBuildType       = "build_type"
	SettingArch            = "arch"
)

var (
	knownOS         = []string{"Linux", "Windows", "Macos", "FreeBSD"}
	knownCompilers  = []string{"gcc", "clang", "apple-clang", "msvc"}
	knownBuildTypes = []string{"Release", "Debug", "RelWithDebInfo", "MinSizeRel"}
	knownArchs      = []string{"x86_64", "x86", "armv8", "armv7"}
)

// SettingAxes returns the four setting axes that participate in resolution, in order.
func SettingAxes() []string {
	return []string{SettingOS, SettingCompiler, SettingBuildType, SettingArch}
}

// BuildSettings are supplied by the environment or a profile, never by the recipe.
type BuildSettings struct {
	OS              string `json:"os" yaml:"os"`
	Compiler        string `json:"compiler" yaml:"compiler"`
	CompilerVersion string `json:"compiler.version,omitempty" yaml:"compiler.version"`
	BuildType       string `json:"build_type" yaml:"build_type"`
	Arch            string `json:"arch" yaml:"arch"`
}

// HostSettings derives default settings from the running platform.
func HostSettings() BuildSettings {
	s := BuildSettings{BuildType: "Release"}

	switch runtime.GOOS {
	case "darwin":
		s.OS, s.Compiler = "Macos", "apple-clang"
	case "windows":
		s.OS, s.Compiler = "Windows", "msvc"
	case "freebsd":
		s.OS, s.Compiler = "FreeBSD", "clang"
	default:
		s.OS, s.Compiler = "Linux", "gcc"
	}

	switch runtime.GOARCH {
	case "arm64":
		s.Arch = "armv8"
	case "arm":
		s.Arch = "armv7"
	case "386":
		s.Arch = "x86"
	default:
		s.Arch = "x86_64"
	}
	return s
}

// Get returns the value of a setting by key.
func (s BuildSettings) Get(key string) (string, error) {
	switch key {
	case SettingOS:
		return s.OS, nil
	case SettingCompiler:
		return s.Compiler, nil
	case SettingCompilerVersion:
		return s.CompilerVersion, nil
	case SettingBuildType:
		return s.BuildType, nil
	case SettingArch:
		return s.Arch, nil
	default:
		return "", zerr.With(ErrUnknownSetting, "setting", key)
	}
}

// Set assigns a setting by key.
func (s *BuildSettings) Set(key, value string) error {
	switch key {
	case SettingOS:
		s.OS = value
	case SettingCompiler:
		s.Compiler = value
	case SettingCompilerVersion:
		s.CompilerVersion = value
	case SettingBuildType:
		s.BuildType = value
	case SettingArch:
		s.Arch = value
	default:
		return zerr.With(ErrUnknownSetting, "setting", key)
	}
	return nil
}

// ParseAssignments applies "key=value" assignments to the settings.
func (s *BuildSettings) ParseAssignments(assignments []string) error {
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return zerr.With(ErrInvalidSetting, "assignment", a)
		}
		if err := s.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

// Missing returns the axes that have no value.
func (s BuildSettings) Missing() []string {
	var missing []string
	for _, axis := range SettingAxes() {
		if v, _ := s.Get(axis); v == "" {
			missing = append(missing, axis)
		}
	}
	return missing
}

// Validate checks that every axis is set to a known value.
func (s BuildSettings) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return zerr.With(ErrMissingSetting, "settings", strings.Join(missing, ","))
	}

	checks := []struct {
		key   string
		value string
		known []string
	}{
		{SettingOS, s.OS, knownOS},
		{SettingCompiler, s.Compiler, knownCompilers},
		{SettingBuildType, s.BuildType, knownBuildTypes},
		{SettingArch, s.Arch, knownArchs},
	}
	for _, c := range checks {
		if !slices.Contains(c.known, c.value) {
			err := zerr.With(ErrInvalidSetting, "setting", c.key)
			err = zerr.With(err, "value", c.value)
			return zerr.With(err, "allowed", strings.Join(c.known, ","))
		}
	}
	return nil
}

// String renders the settings as a space separated list of key=value pairs.
func (s BuildSettings) String() string {
	parts := []string{
		SettingOS + "=" + s.OS,
		SettingCompiler + "=" + s.Compiler,
	}
	if s.CompilerVersion != "" {
		parts = append(parts, SettingCompilerVersion+"="+s.CompilerVersion)
	}
	parts = append(parts,
		SettingBuildType+"="+s.BuildType,
		SettingArch+"="+s.Arch,
	)
	return strings.Join(parts, " ")
}
