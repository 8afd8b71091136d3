package cmake

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Deps renders one CMake config package per resolved dependency.
type Deps struct{}

// NewDeps creates the CMakeDeps generator.
func NewDeps() *Deps {
	return &Deps{}
}

// Name returns domain.GeneratorCMakeDeps.
func (d *Deps) Name() domain.Generator {
	return domain.GeneratorCMakeDeps
}

type depTarget struct {
	FileName string
	Target   string
}

type depsPackage struct {
	Ref        string
	FileName   string
	Var        string
	Target     string
	Components []string
	Version    string
	PackageID  string
	BuildType  string
	Config     string
	Arch       string
	Folder     string
	HeaderOnly bool
	Options    string
	Deps       []depTarget
	DepTargets string
	DataGlob   string
}

// Generate renders the config, version and data files of every package in the graph.
func (d *Deps) Generate(ctx context.Context, in ports.GenerateInput) ([]domain.GeneratedFile, error) {
	if in.Graph == nil {
		return nil, zerr.With(domain.ErrGenerationFailed, "generator", d.Name().String())
	}
	if in.Settings.BuildType == "" {
		return nil, domain.ErrMissingBuildType
	}

	var files []domain.GeneratedFile
	for p := range in.Graph.Packages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := d.packageData(in, p)
		if err != nil {
			return nil, err
		}

		configName, versionName := ConfigFileNames(data.FileName)
		dataName := strings.ToLower(data.FileName) + "-" + strings.ToLower(data.BuildType) + "-" + data.Arch + "-data.cmake"

		for _, f := range []struct {
			name     string
			template string
		}{
			{configName, "config.cmake.tmpl"},
			{versionName, "config-version.cmake.tmpl"},
			{dataName, "data.cmake.tmpl"},
		} {
			content, err := render(f.template, data)
			if err != nil {
				return nil, zerr.With(err, "package", data.Ref)
			}
			files = append(files, domain.GeneratedFile{
				Path:      filepath.Join(in.Folders.Generators, f.name),
				Content:   content,
				Generator: d.Name(),
			})
		}
	}
	return files, nil
}

func (d *Deps) packageData(in ports.GenerateInput, p *domain.ResolvedPackage) (depsPackage, error) {
	fileName := p.Info.CMakeFileName()
	target := p.Info.CMakeTargetName()

	data := depsPackage{
		Ref:        p.Ref.String(),
		FileName:   fileName,
		Var:        strings.NewReplacer("-", "_", ".", "_").Replace(fileName),
		Target:     target,
		Components: componentTargets(target, p.Info.Components),
		Version:    p.Ref.Version,
		PackageID:  p.PackageID,
		BuildType:  in.Settings.BuildType,
		Config:     strings.ToUpper(in.Settings.BuildType),
		Arch:       in.Settings.Arch,
		Folder:     path.Join(filepath.ToSlash(in.PackagesRoot), p.Ref.Name, p.Ref.Version, p.PackageID),
		HeaderOnly: p.Info.IsHeaderOnly(p.Options),
		DataGlob:   strings.ToLower(fileName) + "-*-data.cmake",
	}

	opts := p.Options.Options()
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = o.String()
	}
	data.Options = strings.Join(parts, ";")

	targets := make([]string, 0, len(p.Requires))
	for _, name := range p.Requires {
		dep, ok := in.Graph.Get(name)
		if !ok {
			return depsPackage{}, zerr.With(domain.ErrMissingDependency, "dependency", name)
		}
		data.Deps = append(data.Deps, depTarget{
			FileName: dep.Info.CMakeFileName(),
			Target:   dep.Info.CMakeTargetName(),
		})
		targets = append(targets, dep.Info.CMakeTargetName())
	}
	data.DepTargets = strings.Join(targets, ";")
	return data, nil
}

// ConfigFileNames returns the config and version file names CMake's find_package looks for.
// Lower-case file names use the <name>-config.cmake spelling.
func ConfigFileNames(fileName string) (config, version string) {
	if fileName == strings.ToLower(fileName) {
		return fileName + "-config.cmake", fileName + "-config-version.cmake"
	}
	return fileName + "Config.cmake", fileName + "ConfigVersion.cmake"
}

// componentTargets names one imported target per component in the main target's namespace.
func componentTargets(target string, components []string) []string {
	namespace, _, ok := strings.Cut(target, "::")
	if !ok {
		namespace = target
	}
	var out []string
	for _, c := range components {
		t := namespace + "::" + c
		if t == target {
			continue
		}
		out = append(out, t)
	}
	return out
}
