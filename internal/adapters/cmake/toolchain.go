package cmake

import (
	"context"
	"encoding/json"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// ToolchainFileName is the toolchain file written to the generators folder.
	ToolchainFileName = "recipe_toolchain.cmake"
	// PresetsFileName is the presets file written to the generators folder.
	PresetsFileName = "CMakePresets.json"
	// UserPresetsFileName is the presets file written to the source folder.
	UserPresetsFileName = "CMakeUserPresets.json"

	presetsVersion     = 3
	userPresetsVersion = 4
)

// Toolchain renders the CMake toolchain file and presets.
type Toolchain struct{}

// NewToolchain creates the CMakeToolchain generator.
func NewToolchain() *Toolchain {
	return &Toolchain{}
}

// Name returns domain.GeneratorCMakeToolchain.
func (t *Toolchain) Name() domain.Generator {
	return domain.GeneratorCMakeToolchain
}

type toolchainData struct {
	Settings    string
	CCompiler   string
	CXXCompiler string
	BuildType   string
}

var compilers = map[string][2]string{
	"gcc":         {"gcc", "g++"},
	"clang":       {"clang", "clang++"},
	"apple-clang": {"clang", "clang++"},
	"msvc":        {"cl", "cl"},
}

// Generate renders recipe_toolchain.cmake, CMakePresets.json and CMakeUserPresets.json.
func (t *Toolchain) Generate(ctx context.Context, in ports.GenerateInput) ([]domain.GeneratedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmakeGenerator := in.CMakeGenerator
	if cmakeGenerator == "" {
		cmakeGenerator = domain.DefaultCMakeGenerator(in.Settings)
	}
	multiConfig := domain.IsMultiConfig(cmakeGenerator)

	data := toolchainData{Settings: in.Settings.String()}
	if c, ok := compilers[in.Settings.Compiler]; ok {
		data.CCompiler, data.CXXCompiler = c[0], c[1]
	}
	if !multiConfig {
		data.BuildType = in.Settings.BuildType
	}

	toolchain, err := render("toolchain.cmake.tmpl", data)
	if err != nil {
		return nil, err
	}

	presets, err := marshalPresets(buildPresets(in, cmakeGenerator, multiConfig))
	if err != nil {
		return nil, err
	}

	user, err := marshalPresets(userPresets{
		Version: userPresetsVersion,
		Vendor:  vendor{Recipe: struct{}{}},
		Include: []string{path.Join(filepath.ToSlash(in.Folders.Generators), PresetsFileName)},
	})
	if err != nil {
		return nil, err
	}

	return []domain.GeneratedFile{
		{Path: filepath.Join(in.Folders.Generators, ToolchainFileName), Content: toolchain, Generator: t.Name()},
		{Path: filepath.Join(in.Folders.Generators, PresetsFileName), Content: presets, Generator: t.Name()},
		{Path: filepath.Join(in.Folders.Source, UserPresetsFileName), Content: user, Generator: t.Name()},
	}, nil
}

type vendor struct {
	Recipe struct{} `json:"recipe"`
}

type cmakeVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

type configurePreset struct {
	Name           string            `json:"name"`
	DisplayName    string            `json:"displayName"`
	Description    string            `json:"description"`
	Generator      string            `json:"generator"`
	CacheVariables map[string]string `json:"cacheVariables"`
	ToolchainFile  string            `json:"toolchainFile"`
	BinaryDir      string            `json:"binaryDir"`
}

type buildPreset struct {
	Name            string `json:"name"`
	ConfigurePreset string `json:"configurePreset"`
	Configuration   string `json:"configuration,omitempty"`
}

type presetsFile struct {
	Version              int               `json:"version"`
	Vendor               vendor            `json:"vendor"`
	CMakeMinimumRequired cmakeVersion      `json:"cmakeMinimumRequired"`
	ConfigurePresets     []configurePreset `json:"configurePresets"`
	BuildPresets         []buildPreset     `json:"buildPresets"`
	TestPresets          []buildPreset     `json:"testPresets"`
}

type userPresets struct {
	Version int      `json:"version"`
	Vendor  vendor   `json:"vendor"`
	Include []string `json:"include"`
}

func buildPresets(in ports.GenerateInput, cmakeGenerator string, multiConfig bool) presetsFile {
	buildName := strings.ToLower(in.Settings.BuildType)
	configureName := buildName
	cache := map[string]string{"CMAKE_POLICY_DEFAULT_CMP0091": "NEW"}
	configuration := ""
	if multiConfig {
		configureName = "default"
		configuration = in.Settings.BuildType
	} else {
		cache["CMAKE_BUILD_TYPE"] = in.Settings.BuildType
	}

	sourceRelative := func(p string) string {
		return "${sourceDir}/" + filepath.ToSlash(p)
	}

	return presetsFile{
		Version:              presetsVersion,
		Vendor:               vendor{Recipe: struct{}{}},
		CMakeMinimumRequired: cmakeVersion{Major: 3, Minor: 15},
		ConfigurePresets: []configurePreset{{
			Name:           configureName,
			DisplayName:    "'" + configureName + "' config",
			Description:    "'" + configureName + "' configure using '" + cmakeGenerator + "' generator",
			Generator:      cmakeGenerator,
			CacheVariables: cache,
			ToolchainFile:  sourceRelative(path.Join(filepath.ToSlash(in.Folders.Generators), ToolchainFileName)),
			BinaryDir:      sourceRelative(in.Folders.Build),
		}},
		BuildPresets: []buildPreset{{
			Name:            buildName,
			ConfigurePreset: configureName,
			Configuration:   configuration,
		}},
		TestPresets: []buildPreset{{
			Name:            buildName,
			ConfigurePreset: configureName,
			Configuration:   configuration,
		}},
	}
}

func marshalPresets(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrGenerationFailed.Error())
	}
	return append(data, '\n'), nil
}
