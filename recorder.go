package saguaro

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandClear   CommandType = iota // ClearSurface
	CommandRect                       // FillRect
	CommandCircle                     // FillCircle
	CommandLine                       // StrokeLine
	CommandPolygon                    // FillPolygon
)

// String returns a short name used in debug output.
func (t CommandType) String() string {
	switch t {
	case CommandClear:
		return "clear"
	case CommandRect:
		return "rect"
	case CommandCircle:
		return "circle"
	case CommandLine:
		return "line"
	case CommandPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// DrawCommand is a single recorded draw call. Only the fields relevant to
// Type are set.
type DrawCommand struct {
	Type  CommandType
	Color Color

	X, Y   float64 // rect origin, circle center, line start
	W, H   float64 // rect size
	R      float64 // circle radius
	X2, Y2 float64 // line end
	Width  float64 // line width

	// Points holds a copy of the polygon outline.
	Points []Vec2
}

// Recorder is a Renderer that records draw calls instead of painting them.
// Hosts that separate simulation from painting (Ebitengine's Update/Draw)
// tick into a Recorder and Replay it onto the real surface. Tests use it to
// assert frame output without a GPU.
type Recorder struct {
	commands []DrawCommand
	pending  func()

	// polygons controls whether Surface advertises PolygonFiller. When
	// false, hills are recorded as columns.
	polygons bool
}

// NewRecorder creates a recorder. With polygons set, FillPolygon calls are
// recorded; otherwise callers see a plain Surface.
func NewRecorder(polygons bool) *Recorder {
	return &Recorder{
		commands: make([]DrawCommand, 0, defaultCommandCap),
		polygons: polygons,
	}
}

const defaultCommandCap = 1024

// ClearSurface discards every command recorded so far and records a clear.
func (r *Recorder) ClearSurface() {
	r.commands = r.commands[:0]
	r.commands = append(r.commands, DrawCommand{Type: CommandClear})
}

// FillRect records a filled rectangle.
func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.commands = append(r.commands, DrawCommand{Type: CommandRect, X: x, Y: y, W: w, H: h, Color: c})
}

// FillCircle records a filled circle.
func (r *Recorder) FillCircle(x, y, radius float64, c Color) {
	r.commands = append(r.commands, DrawCommand{Type: CommandCircle, X: x, Y: y, R: radius, Color: c})
}

// StrokeLine records a stroked line.
func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c Color) {
	r.commands = append(r.commands, DrawCommand{Type: CommandLine, X: x1, Y: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

// fillPolygon records a polygon. It is exposed through polygonRecorder so
// that a Recorder built without polygon support is not a PolygonFiller.
func (r *Recorder) fillPolygon(points []Vec2, c Color) {
	pts := make([]Vec2, len(points))
	copy(pts, points)
	r.commands = append(r.commands, DrawCommand{Type: CommandPolygon, Points: pts, Color: c})
}

// ScheduleNextFrame stores fn; RunPending invokes it.
func (r *Recorder) ScheduleNextFrame(fn func()) {
	r.pending = fn
}

// RunPending invokes the scheduled frame callback, if any, and reports
// whether one ran.
func (r *Recorder) RunPending() bool {
	fn := r.pending
	if fn == nil {
		return false
	}
	r.pending = nil
	fn()
	return true
}

// Commands returns the recorded commands. The returned slice MUST NOT be
// mutated.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Replay paints the recorded commands onto s in order. Polygons are
// replayed as polygons when s supports them and as columns otherwise.
func (r *Recorder) Replay(s Surface) {
	pf, _ := s.(PolygonFiller)
	for i := range r.commands {
		cmd := &r.commands[i]
		switch cmd.Type {
		case CommandClear:
			s.ClearSurface()
		case CommandRect:
			s.FillRect(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Color)
		case CommandCircle:
			s.FillCircle(cmd.X, cmd.Y, cmd.R, cmd.Color)
		case CommandLine:
			s.StrokeLine(cmd.X, cmd.Y, cmd.X2, cmd.Y2, cmd.Width, cmd.Color)
		case CommandPolygon:
			if pf != nil {
				pf.FillPolygon(cmd.Points, cmd.Color)
			} else {
				fillOutlineColumns(s, cmd.Points, cmd.Color)
			}
		}
	}
}

// Surface returns the recorder as the surface the scene should paint on,
// wrapped so that it advertises PolygonFiller only when enabled.
func (r *Recorder) Surface() Renderer {
	if r.polygons {
		return polygonRecorder{r}
	}
	return r
}

type polygonRecorder struct{ *Recorder }

func (p polygonRecorder) FillPolygon(points []Vec2, c Color) {
	p.fillPolygon(points, c)
}

// RecorderStats counts recorded commands by type.
type RecorderStats struct {
	Total  int
	ByType [CommandPolygon + 1]int
}

// Stats counts the recorded commands.
func (r *Recorder) Stats() RecorderStats {
	var st RecorderStats
	st.Total = len(r.commands)
	for i := range r.commands {
		st.ByType[r.commands[i].Type]++
	}
	return st
}
