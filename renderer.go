package saguaro

// Surface is the drawing target the scene paints onto. Coordinates are in
// canvas pixels with the origin at the top-left.
type Surface interface {
	ClearSurface()
	FillRect(x, y, w, h float64, c Color)
	FillCircle(x, y, r float64, c Color)
	StrokeLine(x1, y1, x2, y2, width float64, c Color)
}

// PolygonFiller is implemented by surfaces that can fill an arbitrary simple
// polygon in one call. Hills use it when available and fall back to
// one-pixel columns otherwise.
type PolygonFiller interface {
	FillPolygon(points []Vec2, c Color)
}

// Scheduler runs a callback on the next display refresh.
type Scheduler interface {
	ScheduleNextFrame(fn func())
}

// Renderer is the full host contract: a surface plus frame scheduling.
type Renderer interface {
	Surface
	Scheduler
}
