package schema

// Defaults for optional fields absent from a loaded file, matching what
// the app has always written.
const (
	DefaultAppName    = "Somno"
	DefaultVersion    = "1.0.0"
	DefaultWindowSize = "5 min"
	DefaultMaxSamples = "1000"
)

// Defaults returns the hardcoded minimal document used when no config,
// legacy config, or template can be found anywhere. The palette is the
// built-in one from the first release; both color maps are non-empty so
// the viewer always has something to annotate with.
func Defaults() *Document {
	return &Document{
		AppName:    DefaultAppName,
		Version:    DefaultVersion,
		WindowSize: DefaultWindowSize,
		MaxSamples: DefaultMaxSamples,
		Autoscale:  AutoscaleResize,
		LoadMode:   LoadModeAll,
		UseIcons:   true,
		EventTypes: NewColorMap(
			Entry{Name: "Start", Color: "green"},
			Entry{Name: "Stop", Color: "red"},
			Entry{Name: "Error", Color: "orange"},
		),
		StateTypes: NewColorMap(
			Entry{Name: "Recording", Color: "blue"},
			Entry{Name: "Paused", Color: "yellow"},
			Entry{Name: "Processing", Color: "purple"},
		),
	}
}
