// Package locate builds the ordered lists of filesystem locations the
// bootstrap consults. It performs no I/O: candidates are a pure function
// of explicit root hints, so the search order is testable on its own and
// a new packaging layout only means adding an entry.
package locate

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Role tags a candidate with why it is being considered.
type Role string

const (
	// RoleActivePrimary is the current location of the active config.
	RoleActivePrimary Role = "activeConfigPrimary"

	// RoleActiveLegacy is a prior version's active config location,
	// eligible for migration. Newest legacy scheme first.
	RoleActiveLegacy Role = "activeConfigLegacy"

	// RoleTemplateUser is the user-maintained template, consulted before
	// any bundled copy so customizations survive app upgrades.
	RoleTemplateUser Role = "templateUserMaintained"

	// RoleTemplateBundled is the template at the packaged-resource
	// location for the current packaging layout.
	RoleTemplateBundled Role = "templateBundledPrimary"

	// RoleTemplateBundledAlt is a template location used by an older or
	// alternative packaging layout.
	RoleTemplateBundledAlt Role = "templateBundledAlt"

	// RoleTemplateDev is the in-tree template, only relevant when
	// running from a source checkout.
	RoleTemplateDev Role = "templateDevelopment"
)

// Format is the on-disk encoding of a candidate document.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Candidate is one filesystem location considered during search.
type Candidate struct {
	Role   Role
	Path   string
	Format Format
}

// File names used across app versions. The v1 release stored the active
// config as config.json inside a "somno-viewer" data directory; v2
// renamed both.
const (
	ConfigFileName       = "somno_config.json"
	LegacyConfigFileName = "config.json"
	LegacyAppDirName     = "somno-viewer"
	TemplateFileName     = "somno_config_template.json"
	TemplateTOMLFileName = "somno_config_template.toml"
	DevTemplateDir       = "assets"
	AltResourceDir       = "resources"
)

// AppDirName is the per-user data directory name under the platform
// config home.
const AppDirName = "somno"

// Environment overrides for roots that cannot be derived from the
// executable location.
const (
	EnvResourceDir = "SOMNO_RESOURCE_DIR"
	EnvDevRoot     = "SOMNO_DEV_ROOT"
)

// Roots are the platform-specific hints candidates are derived from.
// An empty root simply contributes no candidates; it is never an error.
type Roots struct {
	// UserDataDir holds the active config and the user-maintained
	// template. Required for any useful bootstrap.
	UserDataDir string

	// ExecutableDir is the directory of the running binary.
	ExecutableDir string

	// ResourceDir is the packaged-resource directory (e.g. the Resources
	// folder inside a macOS bundle). Optional.
	ResourceDir string

	// RuntimeDir is a runtime-extraction directory used by self-
	// extracting packagings. Optional.
	RuntimeDir string

	// DevRoot is a source checkout root. Optional; only relevant
	// outside a packaged build.
	DevRoot string
}

// DefaultRoots derives roots for the current process: the XDG config
// home for user data, the executable's directory and its bundle-style
// Resources sibling, and environment overrides for the rest.
func DefaultRoots() Roots {
	r := Roots{
		UserDataDir: filepath.Join(xdg.ConfigHome, AppDirName),
		ResourceDir: os.Getenv(EnvResourceDir),
		DevRoot:     os.Getenv(EnvDevRoot),
	}

	if exe, err := os.Executable(); err == nil {
		r.ExecutableDir = filepath.Dir(exe)
		if r.ResourceDir == "" {
			// macOS bundle layout: Contents/MacOS/<binary> next to
			// Contents/Resources.
			r.ResourceDir = filepath.Join(filepath.Dir(r.ExecutableDir), "Resources")
		}
	}

	return r
}

// PrimaryConfigPath returns the active config's current location, or ""
// when no user data directory is known.
func (r Roots) PrimaryConfigPath() string {
	if r.UserDataDir == "" {
		return ""
	}
	return filepath.Join(r.UserDataDir, ConfigFileName)
}

// UserTemplatePath returns the JSON user-maintained template location,
// or "" when no user data directory is known.
func (r Roots) UserTemplatePath() string {
	if r.UserDataDir == "" {
		return ""
	}
	return filepath.Join(r.UserDataDir, TemplateFileName)
}

// ConfigCandidates returns the active-config search order: the primary
// location first, then legacy locations newest scheme first.
func (r Roots) ConfigCandidates() []Candidate {
	var out []Candidate

	if r.UserDataDir != "" {
		out = append(out,
			Candidate{Role: RoleActivePrimary, Path: filepath.Join(r.UserDataDir, ConfigFileName), Format: FormatJSON},
			Candidate{Role: RoleActiveLegacy, Path: filepath.Join(r.UserDataDir, LegacyConfigFileName), Format: FormatJSON},
			Candidate{Role: RoleActiveLegacy, Path: filepath.Join(filepath.Dir(r.UserDataDir), LegacyAppDirName, ConfigFileName), Format: FormatJSON},
		)
	}

	return out
}

// TemplateCandidates returns the template search order: user-maintained
// first, then bundled layouts in packaging-recency order, development
// checkout last.
func (r Roots) TemplateCandidates() []Candidate {
	var out []Candidate

	if r.UserDataDir != "" {
		out = append(out,
			Candidate{Role: RoleTemplateUser, Path: filepath.Join(r.UserDataDir, TemplateFileName), Format: FormatJSON},
			Candidate{Role: RoleTemplateUser, Path: filepath.Join(r.UserDataDir, TemplateTOMLFileName), Format: FormatTOML},
		)
	}
	if r.ResourceDir != "" {
		out = append(out, Candidate{Role: RoleTemplateBundled, Path: filepath.Join(r.ResourceDir, TemplateFileName), Format: FormatJSON})
	}
	if r.ExecutableDir != "" {
		out = append(out,
			Candidate{Role: RoleTemplateBundledAlt, Path: filepath.Join(r.ExecutableDir, TemplateFileName), Format: FormatJSON},
			Candidate{Role: RoleTemplateBundledAlt, Path: filepath.Join(r.ExecutableDir, AltResourceDir, TemplateFileName), Format: FormatJSON},
		)
	}
	if r.RuntimeDir != "" {
		out = append(out, Candidate{Role: RoleTemplateBundledAlt, Path: filepath.Join(r.RuntimeDir, TemplateFileName), Format: FormatJSON})
	}
	if r.DevRoot != "" {
		out = append(out, Candidate{Role: RoleTemplateDev, Path: filepath.Join(r.DevRoot, DevTemplateDir, TemplateFileName), Format: FormatJSON})
	}

	return out
}
