package entity

import (
	"math"
	"sort"
)

// DefaultGridSize is the world size of one cell
const DefaultGridSize = 1.0

// Grid is the stacked tile grid indexed by (row, col, layer).
// Contents are fixed once built; only the player layer changes at runtime.
type Grid struct {
	rows  int
	cols  int
	depth int
	size  float64

	items [][][]ItemKind // [row][col][layer]

	spawn    Cell
	hasSpawn bool
}

// NewGrid creates an all-empty grid.
// Negative dimensions are treated as zero and a non-positive size falls back to DefaultGridSize.
func NewGrid(rows, cols, depth int, size float64) *Grid {
	rows, cols, depth = max(rows, 0), max(cols, 0), max(depth, 0)
	if size <= 0 {
		size = DefaultGridSize
	}

	items := make([][][]ItemKind, rows)
	for r := range items {
		items[r] = make([][]ItemKind, cols)
		for c := range items[r] {
			items[r][c] = make([]ItemKind, depth)
		}
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		depth: depth,
		size:  size,
		items: items,
	}
}

// Rows returns the number of template rows
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of template columns
func (g *Grid) Cols() int { return g.cols }

// Depth returns the number of layers
func (g *Grid) Depth() int { return g.depth }

// Size returns the world size of one cell
func (g *Grid) Size() float64 { return g.size }

// InBounds reports whether (row, col) lies on the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// ValidLayer reports whether layer indexes the layer stack
func (g *Grid) ValidLayer(layer int) bool {
	return layer >= 0 && layer < g.depth
}

// At returns the item at the given slot. Out of range slots are empty.
func (g *Grid) At(row, col, layer int) ItemKind {
	if !g.InBounds(row, col) || !g.ValidLayer(layer) {
		return ItemEmpty
	}
	return g.items[row][col][layer]
}

// Set stores an item. Out of range slots are ignored.
func (g *Grid) Set(row, col, layer int, kind ItemKind) {
	if !g.InBounds(row, col) || !g.ValidLayer(layer) {
		return
	}
	g.items[row][col][layer] = kind
	if kind == ItemPlayer && !g.hasSpawn {
		g.spawn = Cell{Row: row, Col: col, Layer: layer}
		g.hasSpawn = true
	}
}

// Spawn returns the first player slot found while building
func (g *Grid) Spawn() (Cell, bool) {
	return g.spawn, g.hasSpawn
}

// CellCenter returns the world position of a cell center.
// Row 0 is the top of the template, which is the highest Y in world space.
func (g *Grid) CellCenter(row, col int) Vec2 {
	return Vec2{
		X: float64(col) * g.size,
		Y: float64(g.rows-row) * g.size,
	}
}

// CellBox returns the world footprint of a cell
func (g *Grid) CellBox(row, col int) Box {
	half := g.size / 2
	return Box{Center: g.CellCenter(row, col), Extents: Vec2{X: half, Y: half}}
}

// CellOf discretizes a world position to a grid cell.
// The result is clamped into the grid even when pos is outside of it.
func (g *Grid) CellOf(pos Vec2) (row, col int) {
	col = int(math.Round(pos.X / g.size))
	row = g.rows - int(math.Round(pos.Y/g.size))
	return clamp(row, 0, g.rows-1), clamp(col, 0, g.cols-1)
}

// Layer returns the 2D view of one layer. Invalid layers yield an empty view.
func (g *Grid) Layer(layer int) *LayerView {
	return &LayerView{Index: layer, grid: g}
}

// DrawOrder returns the render depth ordinal of a slot.
// Lower layers draw behind; ramps draw one layer behind their slot,
// two behind when stacked on another ramp.
func (g *Grid) DrawOrder(row, col, layer int) int {
	kind := g.At(row, col, layer)
	if !kind.IsRamp() {
		return layer
	}
	if g.At(row, col, layer-1).IsRamp() {
		return layer - 2
	}
	return layer - 1
}

// OverlayOrder returns the render depth of the fog, bright and dark overlays
func (g *Grid) OverlayOrder() int {
	return g.depth + 1
}

// RenderItem is one visual the rendering collaborator has to instantiate
type RenderItem struct {
	Cell  Cell
	Kind  ItemKind
	World Vec2
	Order int
}

// RenderItems lists every non-empty, non-player slot in deterministic draw order
func (g *Grid) RenderItems() []RenderItem {
	var out []RenderItem
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			for k := 0; k < g.depth; k++ {
				kind := g.items[r][c][k]
				if kind == ItemEmpty || kind == ItemPlayer {
					continue
				}
				out = append(out, RenderItem{
					Cell:  Cell{Row: r, Col: c, Layer: k},
					Kind:  kind,
					World: g.CellCenter(r, c),
					Order: g.DrawOrder(r, c, k),
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// LayerView is the per-layer projection used for movement and collision queries
type LayerView struct {
	Index int
	grid  *Grid
}

// Rows returns the number of rows of the underlying grid
func (v *LayerView) Rows() int { return v.grid.rows }

// Cols returns the number of columns of the underlying grid
func (v *LayerView) Cols() int { return v.grid.cols }

// At returns the obstacle classification of a cell on this layer.
// The player marker is not an obstacle and reads as empty.
func (v *LayerView) At(row, col int) ItemKind {
	kind := v.grid.At(row, col, v.Index)
	if kind == ItemPlayer {
		return ItemEmpty
	}
	return kind
}

// IsWall reports whether the cell holds a wall on this layer
func (v *LayerView) IsWall(row, col int) bool {
	return v.At(row, col) == ItemWall
}

// IsEmpty reports whether nothing occupies the cell on this layer
func (v *LayerView) IsEmpty(row, col int) bool {
	return v.At(row, col) == ItemEmpty
}

// Below returns the view of the layer directly underneath
func (v *LayerView) Below() *LayerView {
	return v.grid.Layer(v.Index - 1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
