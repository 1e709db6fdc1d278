package session

// Mode is the single source of truth for which interaction is legal. The
// busy phases of generation, snapping and exploring are signaled by the
// orthogonal loading flag, not by extra modes.
type Mode string

const (
	ModeIdle       Mode = "idle"
	ModeDrawing    Mode = "drawing"
	ModeGenerating Mode = "generating"
	ModeExploring  Mode = "exploring"
	ModeViewing    Mode = "viewing"
)
