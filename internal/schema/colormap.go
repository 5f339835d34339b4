package schema

// Entry is a single name→color assignment.
type Entry struct {
	Name  string
	Color string
}

// ColorMap is an ordered mapping of type names to display colors.
// Insertion order is preserved because it is the order the viewer shows
// event and state types in; a Go map would shuffle it.
type ColorMap struct {
	entries []Entry
}

// NewColorMap builds a ColorMap from entries in order. Duplicate names
// keep their first position but take the last color.
func NewColorMap(entries ...Entry) ColorMap {
	var m ColorMap
	for _, e := range entries {
		m.Set(e.Name, e.Color)
	}
	return m
}

// Set assigns color to name, appending if the name is new.
func (m *ColorMap) Set(name, color string) {
	for i := range m.entries {
		if m.entries[i].Name == name {
			m.entries[i].Color = color
			return
		}
	}
	m.entries = append(m.entries, Entry{Name: name, Color: color})
}

// Get returns the color for name and whether it exists.
func (m ColorMap) Get(name string) (string, bool) {
	for _, e := range m.entries {
		if e.Name == name {
			return e.Color, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (m ColorMap) Len() int {
	return len(m.entries)
}

// Names returns the type names in insertion order.
func (m ColorMap) Names() []string {
	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entries in insertion order.
func (m ColorMap) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Clone returns an independent copy.
func (m ColorMap) Clone() ColorMap {
	return ColorMap{entries: m.Entries()}
}

// Equal reports whether two maps hold the same entries in the same order.
func (m ColorMap) Equal(other ColorMap) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for i, e := range m.entries {
		if other.entries[i] != e {
			return false
		}
	}
	return true
}
