// Package bootstrap resolves the active Somno config on startup: load an
// existing one, migrate a legacy one, install from a discovered template,
// or synthesize hardcoded defaults. Exactly one terminal outcome is
// produced per run.
//
// Every per-candidate failure is absorbed and reduced to a try-the-next-
// candidate decision; the application never crashes over a missing or
// corrupt config. Only a failure to write the primary config escapes as
// an error.
package bootstrap

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	somnoerrors "github.com/stafne/somno/internal/errors"
	"github.com/stafne/somno/internal/loader"
	"github.com/stafne/somno/internal/locate"
	"github.com/stafne/somno/internal/logging"
	"github.com/stafne/somno/internal/schema"
	"github.com/stafne/somno/pkg/fileutil"
)

// Resolver runs the bootstrap state machine. Single-threaded and
// synchronous: it is meant to run once before the app's main loop.
type Resolver struct {
	roots locate.Roots
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for per-step diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// WithClock overrides the time source used to stamp installed documents.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New creates a Resolver over the given root hints.
func New(roots locate.Roots, opts ...Option) *Resolver {
	r := &Resolver{
		roots: roots,
		log:   logging.NewDiscard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the state machine: CheckActive, then CheckLegacy, then
// SearchTemplate, then Defaulted. The returned error is non-nil only
// when the Outcome is KindFailed.
func (r *Resolver) Run() (*Outcome, error) {
	out := &Outcome{}

	primary := r.roots.PrimaryConfigPath()
	if primary == "" {
		err := errors.Mark(errors.New("no user data directory configured"), somnoerrors.ErrDirUnwritable)
		out.Kind = KindFailed
		return out, err
	}

	configs := r.roots.ConfigCandidates()

	// CheckActive: the primary wins outright when present and valid;
	// legacy files are never merged into it.
	active := configs[0]
	doc, ok := r.tryCandidate(out, active)
	if ok {
		out.Kind = KindLoaded
		out.Doc = doc
		out.SourceRole = active.Role
		out.SourcePath = active.Path
		return out, nil
	}

	// CheckLegacy: first valid legacy config is copied (not moved) into
	// the primary location, all field values preserved.
	for _, legacy := range configs[1:] {
		doc, ok := r.tryCandidate(out, legacy)
		if !ok {
			continue
		}
		if err := r.writeDocument(primary, doc); err != nil {
			return r.fail(out, active, err)
		}
		r.step(out, legacy.Role, legacy.Path, ActionMigrated, "")
		r.log.Info("migrated legacy config", "from", legacy.Path, "to", primary)
		out.Kind = KindMigrated
		out.Doc = doc
		out.SourceRole = legacy.Role
		out.SourcePath = legacy.Path
		return out, nil
	}

	// SearchTemplate: first valid template seeds a fresh document.
	for _, tpl := range r.roots.TemplateCandidates() {
		tplDoc, ok := r.tryCandidate(out, tpl)
		if !ok {
			continue
		}
		doc := r.materialize(tplDoc, tpl.Role)
		if err := r.writeDocument(primary, doc); err != nil {
			return r.fail(out, active, err)
		}
		r.step(out, tpl.Role, tpl.Path, ActionInstalled, "")
		r.log.Info("installed config from template", "template", tpl.Path)

		r.seedUserTemplate(out, tpl, doc)

		out.Kind = KindInstalled
		out.Doc = doc
		out.SourceRole = tpl.Role
		out.SourcePath = tpl.Path
		return out, nil
	}

	// Defaulted: the built-in minimal document.
	doc = r.materialize(schema.Defaults(), "defaults")
	if err := r.writeDocument(primary, doc); err != nil {
		return r.fail(out, active, err)
	}
	r.step(out, active.Role, primary, ActionDefaulted, "")
	r.log.Info("no config or template found, wrote built-in defaults", "path", primary)
	out.Kind = KindDefaulted
	out.Doc = doc
	return out, nil
}

// tryCandidate loads one candidate and records the step. A missing file
// is expected fallthrough; anything else recoverable is logged and
// skipped, with unreadable files called out loudly since permission
// problems tend to recur.
func (r *Resolver) tryCandidate(out *Outcome, c locate.Candidate) (*schema.Document, bool) {
	doc, err := loader.Load(c.Path)
	switch {
	case err == nil:
		r.step(out, c.Role, c.Path, ActionLoaded, "")
		r.log.Debug("candidate valid", "role", c.Role, "path", c.Path)
		return doc, true
	case errors.Is(err, somnoerrors.ErrNotFound):
		r.step(out, c.Role, c.Path, ActionNotFound, "")
		r.log.Debug("candidate absent", "role", c.Role, "path", c.Path)
	case errors.Is(err, somnoerrors.ErrUnreadable):
		r.step(out, c.Role, c.Path, ActionSkipped, err.Error())
		r.log.Warn("candidate unreadable, skipping", "role", c.Role, "path", c.Path, "error", err)
	default:
		r.step(out, c.Role, c.Path, ActionSkipped, err.Error())
		r.log.Warn("candidate invalid, skipping", "role", c.Role, "path", c.Path, "error", err)
	}
	return nil, false
}

// materialize clones seed data into a fresh active document and stamps
// its provenance.
func (r *Resolver) materialize(tpl *schema.Document, source locate.Role) *schema.Document {
	doc := tpl.Clone()
	now := r.now().UTC().Format(time.RFC3339)
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.CreatedBy = "bootstrap:" + string(source)
	return doc
}

// seedUserTemplate writes a user-editable template copy next to the
// config when none exists yet, so future runs resolve without the
// bundle. A failure here is not fatal: the primary write already
// succeeded and the next run falls back to bundled candidates again.
func (r *Resolver) seedUserTemplate(out *Outcome, source locate.Candidate, doc *schema.Document) {
	if source.Role == locate.RoleTemplateUser {
		return
	}
	userTpl := r.roots.UserTemplatePath()
	if userTpl == "" {
		return
	}
	if _, err := os.Stat(userTpl); err == nil {
		return
	}

	if err := r.writeDocument(userTpl, doc); err != nil {
		r.step(out, locate.RoleTemplateUser, userTpl, ActionSeedFailed, err.Error())
		r.log.Warn("could not seed user template", "path", userTpl, "error", err)
		return
	}
	r.step(out, locate.RoleTemplateUser, userTpl, ActionSeededUser, "")
	r.log.Info("seeded user-editable template", "path", userTpl)
}

// writeDocument persists doc at path through the atomic writer.
func (r *Resolver) writeDocument(path string, doc *schema.Document) error {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := doc.Encode()
	if err != nil {
		// Unreachable for a valid document; a failure here is a bug,
		// not an environmental condition.
		return err
	}
	return fileutil.AtomicWriteFile(path, data, fileutil.DefaultFilePerm)
}

// fail records the terminal write failure and produces the Failed
// outcome the caller must surface to the user.
func (r *Resolver) fail(out *Outcome, primary locate.Candidate, err error) (*Outcome, error) {
	r.step(out, primary.Role, primary.Path, ActionWriteFailed, err.Error())
	r.log.Error("cannot persist config", "path", primary.Path, "error", err)
	out.Kind = KindFailed
	out.Doc = nil
	return out, errors.Wrap(err, "persisting active config")
}

func (r *Resolver) step(out *Outcome, role locate.Role, path, action, detail string) {
	out.Trail = append(out.Trail, Step{Role: role, Path: path, Action: action, Detail: detail})
}
