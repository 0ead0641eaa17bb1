package driftwood

import "github.com/hajimehoshi/ebiten/v2"

// SurfaceGrid is a tessellated rectangle whose vertices can be displaced
// per-frame from an immutable set of rest positions. Rest positions are
// captured once at creation and never mutated; the live vertices are always
// recomputed as rest + displacement.
//
// Vertex positions are in the panel's local space: a width×height rectangle
// centered on the origin, world units. UV coordinates are remapped whenever a
// texture is attached.
type SurfaceGrid struct {
	cols, rows int
	vertices   []ebiten.Vertex
	indices    []uint16
	restPos    []Vec2
}

// NewSurfaceGrid builds a grid mesh of cols×rows cells covering a centered
// width×height rectangle. Vertices = (cols+1)×(rows+1). UVs start mapped to a
// 1×1 texture (the shared white pixel).
func NewSurfaceGrid(width, height float64, cols, rows int) *SurfaceGrid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	vcols := cols + 1
	vrows := rows + 1
	numVerts := vcols * vrows

	g := &SurfaceGrid{
		cols:     cols,
		rows:     rows,
		vertices: make([]ebiten.Vertex, numVerts),
		indices:  make([]uint16, cols*rows*6),
		restPos:  make([]Vec2, numVerts),
	}

	cellW := width / float64(cols)
	cellH := height / float64(rows)

	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			x := -width/2 + float64(c)*cellW
			y := -height/2 + float64(r)*cellH
			g.vertices[idx] = ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX:   float32(c) / float32(cols),
				SrcY:   float32(r) / float32(rows),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			}
			g.restPos[idx] = Vec2{X: x, Y: y}
		}
	}

	ii := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			g.indices[ii+0] = tl
			g.indices[ii+1] = bl
			g.indices[ii+2] = tr
			g.indices[ii+3] = tr
			g.indices[ii+4] = bl
			g.indices[ii+5] = br
			ii += 6
		}
	}

	return g
}

// Cols returns the number of grid columns.
func (g *SurfaceGrid) Cols() int { return g.cols }

// Rows returns the number of grid rows.
func (g *SurfaceGrid) Rows() int { return g.rows }

// Vertices returns the live vertex slice. The caller MUST NOT resize it.
func (g *SurfaceGrid) Vertices() []ebiten.Vertex { return g.vertices }

// Indices returns the triangle index slice. The caller MUST NOT mutate it.
func (g *SurfaceGrid) Indices() []uint16 { return g.indices }

// RestPosition returns the immutable rest position of the vertex at (col, row).
func (g *SurfaceGrid) RestPosition(col, row int) Vec2 {
	return g.restPos[row*(g.cols+1)+col]
}

// SetAllVertices calls fn for each vertex, passing (col, row, restX, restY).
// fn returns the (dx, dy) displacement from the rest position.
func (g *SurfaceGrid) SetAllVertices(fn func(col, row int, restX, restY float64) (dx, dy float64)) {
	vcols := g.cols + 1
	vrows := g.rows + 1
	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			rest := g.restPos[idx]
			dx, dy := fn(c, r, rest.X, rest.Y)
			g.vertices[idx].DstX = float32(rest.X + dx)
			g.vertices[idx].DstY = float32(rest.Y + dy)
		}
	}
}

// Reset returns all vertices to their rest positions.
func (g *SurfaceGrid) Reset() {
	for i := range g.vertices {
		g.vertices[i].DstX = float32(g.restPos[i].X)
		g.vertices[i].DstY = float32(g.restPos[i].Y)
	}
}

// MapUV remaps the grid's UV coordinates onto the pixel subrectangle
// (u0, v0)–(u1, v1) of a texture. Used when a panel's image arrives: contain
// mode maps the whole image, cover mode maps the centered crop window.
func (g *SurfaceGrid) MapUV(u0, v0, u1, v1 float64) {
	vcols := g.cols + 1
	vrows := g.rows + 1
	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			idx := r*vcols + c
			tx := float64(c) / float64(g.cols)
			ty := float64(r) / float64(g.rows)
			g.vertices[idx].SrcX = float32(u0 + (u1-u0)*tx)
			g.vertices[idx].SrcY = float32(v0 + (v1-v0)*ty)
		}
	}
}
