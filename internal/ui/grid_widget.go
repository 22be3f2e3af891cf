package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"IshiGrid/internal/export"
	"IshiGrid/internal/grid"
	"IshiGrid/internal/state"
)

var (
	gridLineColor     = color.NRGBA{R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff}
	dotColor          = color.NRGBA{R: 0xd1, G: 0xd1, B: 0xd1, A: 0xff}
	pathDotColor      = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	closableDotColor  = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff}
	hoveredDotColor   = color.Black
	currentPathColor  = color.Black
	previewLineColor  = color.NRGBA{A: 0x80}
	currentPathStroke = float32(2)
)

// GridWidget is the drawing surface. It turns taps into picks on the
// session and tracks the hovered intersection for highlighting only.
type GridWidget struct {
	widget.BaseWidget
	session *state.Session
	width   float32
	hovered *grid.Point

	// OnPick runs after every tap with the resulting action.
	OnPick func(grid.Point, state.Action)
}

var _ fyne.Widget = (*GridWidget)(nil)
var _ fyne.Tappable = (*GridWidget)(nil)
var _ desktop.Hoverable = (*GridWidget)(nil)

// NewGridWidget creates a surface for session whose minimum width is width;
// the height follows the 10:14 grid aspect.
func NewGridWidget(session *state.Session, width float32) *GridWidget {
	g := &GridWidget{session: session, width: width}
	g.ExtendBaseWidget(g)
	return g
}

// Hovered returns the highlighted intersection, if any.
func (g *GridWidget) Hovered() (grid.Point, bool) {
	if g.hovered == nil {
		return grid.Point{}, false
	}
	return *g.hovered, true
}

func (g *GridWidget) toGrid(pos fyne.Position) grid.Point {
	size := g.Size()
	return grid.FromRender(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
}

func (g *GridWidget) toScreen(p grid.Point) fyne.Position {
	size := g.Size()
	x, y := grid.ToRender(p, float64(size.Width), float64(size.Height))
	return fyne.NewPos(float32(x), float32(y))
}

// Tapped picks the intersection nearest to the tap.
func (g *GridWidget) Tapped(e *fyne.PointEvent) {
	p := g.toGrid(e.Position)
	g.hovered = &p
	action := g.session.Pick(p)
	g.Refresh()
	if g.OnPick != nil {
		g.OnPick(p, action)
	}
}

func (g *GridWidget) MouseIn(e *desktop.MouseEvent) {
	g.MouseMoved(e)
}

func (g *GridWidget) MouseMoved(e *desktop.MouseEvent) {
	p := g.toGrid(e.Position)
	if g.hovered != nil && *g.hovered == p {
		return
	}
	g.hovered = &p
	g.Refresh()
}

func (g *GridWidget) MouseOut() {
	g.hovered = nil
	g.Refresh()
}

func (g *GridWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &gridRenderer{grid: g}
	r.background = canvas.NewRectangle(color.White)
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeColor = color.Gray{Y: 0xd0}
	r.border.StrokeWidth = 1
	r.shapes = canvas.NewRaster(r.rasterShapes)
	r.rebuild()
	return r
}

type gridRenderer struct {
	grid       *GridWidget
	background *canvas.Rectangle
	border     *canvas.Rectangle
	shapes     *canvas.Raster
	objects    []fyne.CanvasObject
	snap       state.Snapshot
}

// rasterShapes paints committed shapes at the raster's pixel size.
func (r *gridRenderer) rasterShapes(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	doc, err := export.Build(r.snap.Shapes, nil)
	if err != nil {
		return img
	}
	export.Rasterize(img, doc.Paths, export.Fill)
	return img
}

func (r *gridRenderer) rebuild() {
	g := r.grid
	r.snap = g.session.Snapshot()
	size := g.Size()

	objects := []fyne.CanvasObject{r.background, r.border}

	for col := 0; col <= grid.Cols; col++ {
		x := g.toScreen(grid.Pt(col, 0)).X
		line := canvas.NewLine(gridLineColor)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, size.Height)
		objects = append(objects, line)
	}
	for row := 0; row <= grid.Rows; row++ {
		y := g.toScreen(grid.Pt(0, row)).Y
		line := canvas.NewLine(gridLineColor)
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(size.Width, y)
		objects = append(objects, line)
	}

	objects = append(objects, r.shapes)
	objects = append(objects, r.pathObjects()...)
	objects = append(objects, r.dotObjects()...)
	r.objects = objects
}

// pathObjects draws the path in progress and, while hovering, a preview
// segment to the hovered intersection.
func (r *gridRenderer) pathObjects() []fyne.CanvasObject {
	g := r.grid
	path := r.snap.CurrentPath
	if len(path) == 0 {
		return nil
	}
	var objs []fyne.CanvasObject
	for i := 1; i < len(path); i++ {
		seg := canvas.NewLine(currentPathColor)
		seg.StrokeWidth = currentPathStroke
		seg.Position1 = g.toScreen(path[i-1])
		seg.Position2 = g.toScreen(path[i])
		objs = append(objs, seg)
	}
	if hovered, ok := g.Hovered(); ok && hovered != path[len(path)-1] {
		seg := canvas.NewLine(previewLineColor)
		seg.StrokeWidth = currentPathStroke
		seg.Position1 = g.toScreen(path[len(path)-1])
		seg.Position2 = g.toScreen(hovered)
		objs = append(objs, seg)
	}
	return objs
}

func (r *gridRenderer) dotObjects() []fyne.CanvasObject {
	g := r.grid
	path := r.snap.CurrentPath
	inPath := make(map[grid.Point]bool, len(path))
	for _, p := range path {
		inPath[p] = true
	}
	first, hasFirst := path.First()
	hovered, isHovering := g.Hovered()

	objs := make([]fyne.CanvasObject, 0, grid.IntersectionCols*grid.IntersectionRows)
	for _, p := range grid.Intersections() {
		fill, radius := color.Color(dotColor), float32(3)
		switch {
		case isHovering && p == hovered:
			fill, radius = hoveredDotColor, 5
		case hasFirst && p == first && r.snap.CanClose:
			fill, radius = closableDotColor, 4
		case inPath[p]:
			fill, radius = pathDotColor, 4
		}
		dot := canvas.NewCircle(fill)
		c := g.toScreen(p)
		dot.Move(fyne.NewPos(c.X-radius, c.Y-radius))
		dot.Resize(fyne.NewSize(2*radius, 2*radius))
		objs = append(objs, dot)
	}
	return objs
}

func (r *gridRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.border.Resize(size)
	r.shapes.Resize(size)
	r.rebuild()
}

func (r *gridRenderer) MinSize() fyne.Size {
	w := r.grid.width
	return fyne.NewSize(w, w*grid.Rows/grid.Cols)
}

func (r *gridRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *gridRenderer) Refresh() {
	r.rebuild()
	r.shapes.Refresh()
	canvas.Refresh(r.grid)
}

func (r *gridRenderer) Destroy() {}
