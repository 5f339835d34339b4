// Package loader reads and validates one candidate path into a schema
// Document, reporting failures on the bootstrap error taxonomy. It has
// no side effects; classification is the resolver's input for deciding
// whether to fall through to the next candidate.
package loader

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	somnoerrors "github.com/stafne/somno/internal/errors"
	"github.com/stafne/somno/internal/schema"
	"github.com/stafne/somno/pkg/fileutil"
)

// Load reads the file at path into a Document.
//
// Errors are marked with the taxonomy sentinels: ErrNotFound when the
// file is absent, ErrUnreadable on permission or I/O failure,
// ErrMalformed when the content is not well-formed, ErrSchemaInvalid
// when well-formed but structurally wrong. The format is inferred from
// the extension; everything that is not .toml is treated as JSON.
func Load(path string) (*schema.Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		doc, err := parseTOML(data)
		return doc, errors.Wrapf(err, "loading %s", path)
	}

	doc, err := schema.Parse(data)
	return doc, errors.Wrapf(err, "loading %s", path)
}

// tomlDocument mirrors the document schema for hand-written TOML
// templates. Pointers distinguish absent fields from explicit zero
// values so defaults only fill genuine gaps.
type tomlDocument struct {
	AppName        *string           `toml:"app_name"`
	Version        *string           `toml:"version"`
	CreatedBy      *string           `toml:"created_by"`
	CreatedAt      *string           `toml:"created_at"`
	UpdatedAt      *string           `toml:"updated_at"`
	WindowGeometry *string           `toml:"window_geometry"`
	WindowSize     *string           `toml:"window_size"`
	MaxSamples     *string           `toml:"max_samples"`
	Autoscale      *string           `toml:"autoscale"`
	LoadMode       *string           `toml:"load_mode"`
	UseIcons       *bool             `toml:"use_icons"`
	DarkMode       *bool             `toml:"dark_mode"`
	AntiAlias      *bool             `toml:"anti_alias"`
	RemoveDC       *bool             `toml:"remove_dc"`
	AutoOutput     *bool             `toml:"auto_output"`
	Note           *string           `toml:"note"`
	EventTypes     map[string]string `toml:"event_types"`
	StateTypes     map[string]string `toml:"state_types"`
}

// parseTOML decodes a TOML template into a Document. TOML tables do not
// carry key order, so color map entries come out name-sorted; only
// user-maintained templates may be TOML and installs re-stamp the
// document, so the display-order invariant binds to JSON documents.
func parseTOML(data []byte) (*schema.Document, error) {
	var td tomlDocument
	if err := toml.Unmarshal(data, &td); err != nil {
		// Distinguish a shape problem from unparseable content.
		var probe map[string]any
		if probeErr := toml.Unmarshal(data, &probe); probeErr != nil {
			return nil, errors.Mark(err, somnoerrors.ErrMalformed)
		}
		return nil, errors.Mark(err, somnoerrors.ErrSchemaInvalid)
	}

	if len(td.EventTypes) == 0 {
		return nil, errors.Mark(errors.New(`"event_types" missing or empty`), somnoerrors.ErrSchemaInvalid)
	}
	if len(td.StateTypes) == 0 {
		return nil, errors.Mark(errors.New(`"state_types" missing or empty`), somnoerrors.ErrSchemaInvalid)
	}

	doc := schema.Defaults()
	doc.EventTypes = sortedColorMap(td.EventTypes)
	doc.StateTypes = sortedColorMap(td.StateTypes)

	setIfPresent(&doc.AppName, td.AppName)
	setIfPresent(&doc.Version, td.Version)
	setIfPresent(&doc.CreatedBy, td.CreatedBy)
	setIfPresent(&doc.CreatedAt, td.CreatedAt)
	setIfPresent(&doc.UpdatedAt, td.UpdatedAt)
	setIfPresent(&doc.WindowGeometry, td.WindowGeometry)
	setIfPresent(&doc.WindowSize, td.WindowSize)
	setIfPresent(&doc.MaxSamples, td.MaxSamples)
	setIfPresent(&doc.Note, td.Note)
	if td.Autoscale != nil {
		doc.Autoscale = schema.AutoscaleMode(*td.Autoscale)
	}
	if td.LoadMode != nil {
		doc.LoadMode = schema.LoadMode(*td.LoadMode)
	}
	if td.UseIcons != nil {
		doc.UseIcons = *td.UseIcons
	}
	if td.DarkMode != nil {
		doc.DarkMode = *td.DarkMode
	}
	if td.AntiAlias != nil {
		doc.AntiAlias = *td.AntiAlias
	}
	if td.RemoveDC != nil {
		doc.RemoveDC = *td.RemoveDC
	}
	if td.AutoOutput != nil {
		doc.AutoOutput = *td.AutoOutput
	}

	return doc, nil
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func sortedColorMap(m map[string]string) schema.ColorMap {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var cm schema.ColorMap
	for _, name := range names {
		cm.Set(name, m[name])
	}
	return cm
}
