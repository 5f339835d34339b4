package bootstrap

import (
	"github.com/stafne/somno/internal/locate"
	"github.com/stafne/somno/internal/schema"
)

// Kind is the terminal classification of a bootstrap run.
type Kind string

const (
	// KindLoaded means the active config already existed and was valid.
	// Zero writes were performed.
	KindLoaded Kind = "loaded"

	// KindMigrated means a legacy config was copied into the primary
	// location. The legacy file is left in place.
	KindMigrated Kind = "migrated"

	// KindInstalled means a fresh config was materialized from a
	// discovered template.
	KindInstalled Kind = "installed"

	// KindDefaulted means no usable candidate existed anywhere and the
	// hardcoded minimal document was written.
	KindDefaulted Kind = "defaulted"

	// KindFailed means the final write could not be performed. The
	// owning application must surface this instead of continuing
	// silently with an unpersistable config.
	KindFailed Kind = "failed"
)

// Step actions recorded in the trail.
const (
	ActionLoaded      = "loaded"
	ActionNotFound    = "not-found"
	ActionSkipped     = "skipped"
	ActionMigrated    = "migrated"
	ActionInstalled   = "installed"
	ActionDefaulted   = "defaulted"
	ActionWriteFailed = "write-failed"
	ActionSeededUser  = "seeded-user-template"
	ActionSeedFailed  = "seed-failed"
)

// Step is one decision in the diagnostic trail: a candidate tried and
// what happened. The owning application logs the trail; this package
// does not own log formatting or destinations.
type Step struct {
	Role   locate.Role `json:"role" yaml:"role"`
	Path   string      `json:"path" yaml:"path"`
	Action string      `json:"action" yaml:"action"`
	Detail string      `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Outcome is the single terminal result of a resolver run. Created once
// per startup, consumed immediately, never persisted.
type Outcome struct {
	Kind Kind

	// Doc is the ready-to-use document. Nil only when Kind is KindFailed.
	Doc *schema.Document

	// SourceRole and SourcePath identify where the document came from:
	// the primary config for Loaded, the legacy file for Migrated, the
	// template for Installed. Empty for Defaulted and Failed.
	SourceRole locate.Role
	SourcePath string

	// Trail is the ordered diagnostic record of every candidate tried.
	Trail []Step
}
