package engine

// Region describes the host-owned display rectangle the engine renders
// into. Height is the current height; MinHeight and MaxHeight bound resize
// requests.
type Region struct {
	Height    int
	MinHeight int
	MaxHeight int
}

// Host is the narrow collaborator contract the engine depends on. The host
// adapter owns interception of its native message/lifecycle primitives and
// forwards them to the engine's entry points; the engine only ever talks
// back through this interface. ResizeDisplayRegion and
// ReplaceDisplayRegionText are invoked exclusively from the render applier.
type Host interface {
	DisplayWidth() int
	DisplayRegion() Region
	ResizeDisplayRegion(delta int)
	ReplaceDisplayRegionText(text string)

	// StatusText returns the current right-zone status summary.
	StatusText() string

	// InputActive reports whether the minibuffer-equivalent input surface
	// is live; InputPending reports undispatched input. Either one causes
	// redraw requests to be dropped outright.
	InputActive() bool
	InputPending() bool

	// SetEchoSuppressed toggles keystroke echo while a command runs.
	SetEchoSuppressed(suppressed bool)
}
