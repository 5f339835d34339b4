// Package schema models the on-disk Somno settings document: the
// structural contract for both active configs and templates.
//
// Parsing is forward-compatible. Optional fields absent from older files
// get defaults, and keys this version does not know about are retained in
// document order and re-emitted verbatim, so a migration never drops a
// newer field.
package schema

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	somnoerrors "github.com/stafne/somno/internal/errors"
)

// AutoscaleMode controls how traces rescale. Open enum: unknown values
// from newer versions pass through untouched.
type AutoscaleMode string

const (
	AutoscaleResize AutoscaleMode = "resize"
	AutoscaleFixed  AutoscaleMode = "fixed"
)

// LoadMode controls how recordings are read in. Open enum.
type LoadMode string

const (
	LoadModeAll         LoadMode = "all"
	LoadModeIncremental LoadMode = "incremental"
)

// On-disk key names.
const (
	keyAppName        = "app_name"
	keyVersion        = "version"
	keyCreatedBy      = "created_by"
	keyCreatedAt      = "created_at"
	keyUpdatedAt      = "updated_at"
	keyWindowGeometry = "window_geometry"
	keyWindowSize     = "window_size"
	keyMaxSamples     = "max_samples"
	keyAutoscale      = "autoscale"
	keyLoadMode       = "load_mode"
	keyUseIcons       = "use_icons"
	keyDarkMode       = "dark_mode"
	keyAntiAlias      = "anti_alias"
	keyRemoveDC       = "remove_dc"
	keyAutoOutput     = "auto_output"
	keyNote           = "note"
	keyEventTypes     = "event_types"
	keyStateTypes     = "state_types"

	// Written by the original setup scripts; read as created_at when
	// created_at is absent, and still round-tripped verbatim via Extra.
	keyCreatedTimestamp = "created_timestamp"
)

// knownOptionalKeys are the keys whose null values are treated as absent.
var knownOptionalKeys = map[string]bool{
	keyAppName: true, keyVersion: true, keyCreatedBy: true,
	keyCreatedAt: true, keyUpdatedAt: true, keyWindowGeometry: true,
	keyWindowSize: true, keyMaxSamples: true, keyAutoscale: true,
	keyLoadMode: true, keyUseIcons: true, keyDarkMode: true,
	keyAntiAlias: true, keyRemoveDC: true, keyAutoOutput: true,
	keyNote: true,
}

// ExtraField is an unknown key carried through a round-trip unchanged.
// Raw holds the verbatim JSON value.
type ExtraField struct {
	Key string
	Raw string
}

// Document is a materialized settings document. Timestamps stay strings
// so values written by older versions (Python isoformat, no zone) round-
// trip untouched; the engine stamps new ones in RFC 3339.
type Document struct {
	AppName        string
	Version        string
	CreatedBy      string
	CreatedAt      string
	UpdatedAt      string
	WindowGeometry string
	WindowSize     string
	MaxSamples     string
	Autoscale      AutoscaleMode
	LoadMode       LoadMode
	UseIcons       bool
	DarkMode       bool
	AntiAlias      bool
	RemoveDC       bool
	AutoOutput     bool
	Note           string

	EventTypes ColorMap
	StateTypes ColorMap

	// Extra holds unknown keys in document order.
	Extra []ExtraField
}

// Parse decodes and structurally validates a JSON settings document.
//
// Content that is not well-formed JSON is marked ErrMalformed. Well-formed
// content with a non-object root, a missing or empty required color map,
// or a wrong value shape is marked ErrSchemaInvalid. Absent optional
// fields receive defaults.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Mark(errors.New("not well-formed JSON"), somnoerrors.ErrMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.Mark(errors.New("root is not an object"), somnoerrors.ErrSchemaInvalid)
	}

	doc := &Document{}
	seen := map[string]bool{}
	var parseErr error

	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()

		// Null known optional values count as absent; defaults apply.
		// Unknown null keys still ride along in Extra.
		if value.Type == gjson.Null && knownOptionalKeys[k] {
			return true
		}

		switch k {
		case keyAppName:
			parseErr = setString(&doc.AppName, k, value)
		case keyVersion:
			parseErr = setString(&doc.Version, k, value)
		case keyCreatedBy:
			parseErr = setString(&doc.CreatedBy, k, value)
		case keyCreatedAt:
			parseErr = setString(&doc.CreatedAt, k, value)
		case keyUpdatedAt:
			parseErr = setString(&doc.UpdatedAt, k, value)
		case keyWindowGeometry:
			parseErr = setString(&doc.WindowGeometry, k, value)
		case keyWindowSize:
			parseErr = setString(&doc.WindowSize, k, value)
		case keyMaxSamples:
			parseErr = setString(&doc.MaxSamples, k, value)
		case keyAutoscale:
			var s string
			if parseErr = setString(&s, k, value); parseErr == nil {
				doc.Autoscale = AutoscaleMode(s)
			}
		case keyLoadMode:
			var s string
			if parseErr = setString(&s, k, value); parseErr == nil {
				doc.LoadMode = LoadMode(s)
			}
		case keyUseIcons:
			parseErr = setBool(&doc.UseIcons, k, value)
		case keyDarkMode:
			parseErr = setBool(&doc.DarkMode, k, value)
		case keyAntiAlias:
			parseErr = setBool(&doc.AntiAlias, k, value)
		case keyRemoveDC:
			parseErr = setBool(&doc.RemoveDC, k, value)
		case keyAutoOutput:
			parseErr = setBool(&doc.AutoOutput, k, value)
		case keyNote:
			parseErr = setString(&doc.Note, k, value)
		case keyEventTypes:
			doc.EventTypes, parseErr = parseColorMap(k, value)
		case keyStateTypes:
			doc.StateTypes, parseErr = parseColorMap(k, value)
		default:
			doc.Extra = append(doc.Extra, ExtraField{Key: k, Raw: value.Raw})
			if k == keyCreatedTimestamp && value.Type == gjson.String && doc.CreatedAt == "" && !seen[keyCreatedAt] {
				doc.CreatedAt = value.String()
			}
			return true
		}

		seen[k] = true
		return parseErr == nil
	})

	if parseErr != nil {
		return nil, parseErr
	}

	if !seen[keyEventTypes] {
		return nil, errors.Mark(errors.Newf("missing required key %q", keyEventTypes), somnoerrors.ErrSchemaInvalid)
	}
	if !seen[keyStateTypes] {
		return nil, errors.Mark(errors.Newf("missing required key %q", keyStateTypes), somnoerrors.ErrSchemaInvalid)
	}

	doc.applyDefaults(seen)

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

func setString(dst *string, key string, value gjson.Result) error {
	if value.Type != gjson.String {
		return errors.Mark(errors.Newf("key %q: expected string, got %s", key, value.Type), somnoerrors.ErrSchemaInvalid)
	}
	*dst = value.String()
	return nil
}

func setBool(dst *bool, key string, value gjson.Result) error {
	if !value.IsBool() {
		return errors.Mark(errors.Newf("key %q: expected boolean, got %s", key, value.Type), somnoerrors.ErrSchemaInvalid)
	}
	*dst = value.Bool()
	return nil
}

func parseColorMap(key string, value gjson.Result) (ColorMap, error) {
	var m ColorMap
	if !value.IsObject() {
		return m, errors.Mark(errors.Newf("key %q: expected string-keyed mapping", key), somnoerrors.ErrSchemaInvalid)
	}
	var badValue error
	value.ForEach(func(name, color gjson.Result) bool {
		if color.Type != gjson.String {
			badValue = errors.Mark(errors.Newf("key %q: entry %q is not a string", key, name.String()), somnoerrors.ErrSchemaInvalid)
			return false
		}
		m.Set(name.String(), color.String())
		return true
	})
	return m, badValue
}

// applyDefaults fills optional fields the file did not carry.
func (d *Document) applyDefaults(seen map[string]bool) {
	if !seen[keyAppName] {
		d.AppName = DefaultAppName
	}
	if !seen[keyVersion] {
		d.Version = DefaultVersion
	}
	if !seen[keyWindowSize] {
		d.WindowSize = DefaultWindowSize
	}
	if !seen[keyMaxSamples] {
		d.MaxSamples = DefaultMaxSamples
	}
	if !seen[keyAutoscale] {
		d.Autoscale = AutoscaleResize
	}
	if !seen[keyLoadMode] {
		d.LoadMode = LoadModeAll
	}
	if !seen[keyUseIcons] {
		d.UseIcons = true
	}
}

// Validate enforces the structural invariants of an installable document:
// the required color maps must be non-empty.
func (d *Document) Validate() error {
	if d.EventTypes.Len() == 0 {
		return errors.Mark(errors.Newf("%q must not be empty", keyEventTypes), somnoerrors.ErrSchemaInvalid)
	}
	if d.StateTypes.Len() == 0 {
		return errors.Mark(errors.Newf("%q must not be empty", keyStateTypes), somnoerrors.ErrSchemaInvalid)
	}
	return nil
}

// Clone returns an independent deep copy.
func (d *Document) Clone() *Document {
	out := *d
	out.EventTypes = d.EventTypes.Clone()
	out.StateTypes = d.StateTypes.Clone()
	out.Extra = make([]ExtraField, len(d.Extra))
	copy(out.Extra, d.Extra)
	return &out
}

// Encode serializes the document as indented JSON with a trailing
// newline. Known fields come first in a fixed order, unknown fields
// follow in the order they were read; color map entries keep insertion
// order. Empty string fields are omitted, booleans always emitted.
//
// Encode failing on a valid Document is a programming error, not a
// recoverable condition.
func (d *Document) Encode() ([]byte, error) {
	out := []byte("{}")
	var err error

	set := func(key string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, escapeKey(key), value)
	}
	setIfNonEmpty := func(key, value string) {
		if value != "" {
			set(key, value)
		}
	}

	setIfNonEmpty(keyAppName, d.AppName)
	setIfNonEmpty(keyVersion, d.Version)
	setIfNonEmpty(keyCreatedBy, d.CreatedBy)
	setIfNonEmpty(keyCreatedAt, d.CreatedAt)
	setIfNonEmpty(keyUpdatedAt, d.UpdatedAt)
	setIfNonEmpty(keyWindowGeometry, d.WindowGeometry)
	setIfNonEmpty(keyWindowSize, d.WindowSize)
	setIfNonEmpty(keyMaxSamples, d.MaxSamples)
	setIfNonEmpty(keyAutoscale, string(d.Autoscale))
	setIfNonEmpty(keyLoadMode, string(d.LoadMode))
	set(keyUseIcons, d.UseIcons)
	set(keyDarkMode, d.DarkMode)
	set(keyAntiAlias, d.AntiAlias)
	set(keyRemoveDC, d.RemoveDC)
	set(keyAutoOutput, d.AutoOutput)

	if err == nil {
		var raw []byte
		if raw, err = encodeColorMap(d.EventTypes); err == nil {
			out, err = sjson.SetRawBytes(out, keyEventTypes, raw)
		}
	}
	if err == nil {
		var raw []byte
		if raw, err = encodeColorMap(d.StateTypes); err == nil {
			out, err = sjson.SetRawBytes(out, keyStateTypes, raw)
		}
	}

	setIfNonEmpty(keyNote, d.Note)

	for _, extra := range d.Extra {
		if err != nil {
			break
		}
		out, err = sjson.SetRawBytes(out, escapeKey(extra.Key), []byte(extra.Raw))
	}

	if err != nil {
		return nil, errors.Wrap(err, "encoding document")
	}

	out = pretty.PrettyOptions(out, &pretty.Options{Indent: "  "})
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

func encodeColorMap(m ColorMap) ([]byte, error) {
	out := []byte("{}")
	var err error
	for _, e := range m.Entries() {
		out, err = sjson.SetBytes(out, escapeKey(e.Name), e.Color)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// escapeKey escapes sjson path metacharacters so arbitrary key names
// (event types may contain dots) are treated as a single key.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
