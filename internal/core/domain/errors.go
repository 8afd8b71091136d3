package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidReference is returned when a package reference is not of the form name/version.
	ErrInvalidReference = zerr.New("invalid package reference, expected format: name/version")

	// ErrVersionRange is returned when a reference carries a version range instead of an exact pin.
	ErrVersionRange = zerr.New("version ranges are not allowed, pin an exact version")

	// ErrDuplicateRequirement is returned when the same package is declared more than once.
	ErrDuplicateRequirement = zerr.New("duplicate requirement")

	// ErrDuplicateOption is returned when an option set contains the same option twice.
	ErrDuplicateOption = zerr.New("duplicate option")

	// ErrUnknownOption is returned when an option is not part of the package option schema.
	ErrUnknownOption = zerr.New("unknown option")

	// ErrNoGenerators is returned when a recipe declares no generators.
	ErrNoGenerators = zerr.New("recipe declares no generators")

	// ErrUnknownGenerator is returned when a generator name is not supported.
	ErrUnknownGenerator = zerr.New("unknown generator")

	// ErrUnknownLayout is returned when a layout policy name is not supported.
	ErrUnknownLayout = zerr.New("unknown layout policy")

	// ErrInvalidSetting is returned when a build setting has an unsupported value.
	ErrInvalidSetting = zerr.New("invalid build setting")

	// ErrUnknownSetting is returned when a build setting key is not one of the known axes.
	ErrUnknownSetting = zerr.New("unknown build setting")

	// ErrMissingSetting is returned when a required build setting is empty.
	ErrMissingSetting = zerr.New("missing build setting")

	// ErrMissingBuildType is returned when a single-config layout is requested without a build type.
	ErrMissingBuildType = zerr.New("build_type setting is required by the cmake layout")

	// ErrVersionNotFound is returned when a pinned version does not exist in the package index.
	ErrVersionNotFound = zerr.New("package version not found in index")

	// ErrVersionConflict is returned when two dependents require different versions of a package.
	ErrVersionConflict = zerr.New("version conflict")

	// ErrOptionConflict is returned when two requests disagree on the value of a package option.
	ErrOptionConflict = zerr.New("option conflict")

	// ErrPackageAlreadyExists is returned when a package is added to a graph twice.
	ErrPackageAlreadyExists = zerr.New("package already exists in graph")

	// ErrMissingDependency is returned when a package references a dependency missing from the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrPackageNotFound is returned when a package is not present in the graph.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrResolutionFailed is returned when the dependency graph cannot be resolved.
	ErrResolutionFailed = zerr.New("dependency resolution failed")

	// ErrIndexRequestFailed is returned when the package index cannot be reached after retries.
	ErrIndexRequestFailed = zerr.New("failed to query package index")

	// ErrIndexParseFailed is returned when a package index response cannot be parsed.
	ErrIndexParseFailed = zerr.New("failed to parse package index response")

	// ErrIndexCacheCreateFailed is returned when the index cache directory cannot be created.
	ErrIndexCacheCreateFailed = zerr.New("failed to create index cache directory")

	// ErrIndexCacheReadFailed is returned when a cached index entry cannot be read.
	ErrIndexCacheReadFailed = zerr.New("failed to read from index cache")

	// ErrIndexCacheWriteFailed is returned when an index entry cannot be cached.
	ErrIndexCacheWriteFailed = zerr.New("failed to write to index cache")

	// ErrCatalogInvalid is returned when the embedded package catalog cannot be loaded.
	ErrCatalogInvalid = zerr.New("invalid package catalog")

	// ErrConfigReadFailed is returned when the recipe file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read recipe file")

	// ErrConfigParseFailed is returned when the recipe file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse recipe file")

	// ErrConfigInvalid is returned when the recipe file does not match the recipe schema.
	ErrConfigInvalid = zerr.New("recipe file does not match schema")

	// ErrProfileReadFailed is returned when a profile cannot be read.
	ErrProfileReadFailed = zerr.New("failed to read profile")

	// ErrProfileParseFailed is returned when a profile cannot be parsed.
	ErrProfileParseFailed = zerr.New("failed to parse profile")

	// ErrEnvParseFailed is returned when environment configuration cannot be parsed.
	ErrEnvParseFailed = zerr.New("failed to parse environment configuration")

	// ErrSettingsMergeFailed is returned when settings from several sources cannot be merged.
	ErrSettingsMergeFailed = zerr.New("failed to merge build settings")

	// ErrLayoutCreateFailed is returned when the layout folders cannot be created.
	ErrLayoutCreateFailed = zerr.New("failed to create layout folder")

	// ErrFileWriteFailed is returned when a generated file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write generated file")

	// ErrGenerationFailed is returned when a generator cannot render its descriptors.
	ErrGenerationFailed = zerr.New("failed to generate descriptor files")

	// ErrLockReadFailed is returned when the lockfile cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lockfile")

	// ErrLockUnmarshalFailed is returned when the lockfile cannot be decoded.
	ErrLockUnmarshalFailed = zerr.New("failed to unmarshal lockfile")

	// ErrLockMarshalFailed is returned when the lockfile cannot be encoded.
	ErrLockMarshalFailed = zerr.New("failed to marshal lockfile")

	// ErrLockWriteFailed is returned when the lockfile cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lockfile")

	// ErrLockMissing is returned when a locked install is requested without a lockfile.
	ErrLockMissing = zerr.New("lockfile not found, run 'recipe lock' first")

	// ErrLockMismatch is returned when the resolved graph differs from the lockfile.
	ErrLockMismatch = zerr.New("resolved graph does not match lockfile")

	// ErrInstallFailed is returned when an install run fails.
	ErrInstallFailed = zerr.New("install failed")
)
