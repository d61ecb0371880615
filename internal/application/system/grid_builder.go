package system

import (
	"strings"

	"github.com/IndecisiveBear/IndecisiveBearGame/internal/domain/entity"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/config"
	"github.com/IndecisiveBear/IndecisiveBearGame/internal/infrastructure/logger"
)

// CellDelimiter separates stacked item codes inside one template cell
const CellDelimiter = ':'

// itemCodes maps template codes (upper-cased) to item kinds
var itemCodes = map[string]entity.ItemKind{
	" ":     entity.ItemEmpty,
	"P":     entity.ItemPlayer,
	"W":     entity.ItemWall,
	"T":     entity.ItemRampN,
	"B":     entity.ItemRampS,
	"R":     entity.ItemRampE,
	"L":     entity.ItemRampW,
	"RN":    entity.ItemRampN,
	"RS":    entity.ItemRampS,
	"RE":    entity.ItemRampE,
	"RW":    entity.ItemRampW,
	"RAMPN": entity.ItemRampN,
	"RAMPS": entity.ItemRampS,
	"RAMPE": entity.ItemRampE,
	"RAMPW": entity.ItemRampW,
}

// Diagnostic reports a template code that could not be mapped to an item
type Diagnostic struct {
	Row   int
	Col   int
	Layer int
	Code  string
}

// ParseCell splits a template cell into its stacked item codes.
// Empty tokens from leading, trailing or doubled delimiters are dropped.
func ParseCell(text string) []string {
	var codes []string
	for _, token := range strings.Split(text, string(CellDelimiter)) {
		if token != "" {
			codes = append(codes, token)
		}
	}
	return codes
}

// LookupCode maps a single item code to its kind
func LookupCode(code string) (entity.ItemKind, bool) {
	kind, ok := itemCodes[strings.ToUpper(code)]
	return kind, ok
}

// LoadGrid converts a LevelConfig into a Grid
func LoadGrid(cfg *config.LevelConfig) (*entity.Grid, []Diagnostic) {
	grid, diags := BuildGrid(cfg.Template, cfg.GridSize)
	logger.Info("level loaded",
		"level", cfg.ID,
		"rows", grid.Rows(),
		"cols", grid.Cols(),
		"layers", grid.Depth(),
		"diagnostics", len(diags),
	)
	return grid, diags
}

// BuildGrid instantiates a Grid from a template.
// Grid depth is the deepest cell stack; shorter stacks and short rows are
// padded with empty. Unknown codes become empty and are reported.
func BuildGrid(template [][]string, gridSize float64) (*entity.Grid, []Diagnostic) {
	rows := len(template)
	cols := 0
	depth := 0
	stacks := make([][][]string, rows)
	for r, row := range template {
		cols = max(cols, len(row))
		stacks[r] = make([][]string, len(row))
		for c, text := range row {
			stacks[r][c] = ParseCell(text)
			depth = max(depth, len(stacks[r][c]))
		}
	}

	grid := entity.NewGrid(rows, cols, depth, gridSize)
	var diags []Diagnostic

	for r := range stacks {
		for c := range stacks[r] {
			for k, code := range stacks[r][c] {
				kind, ok := LookupCode(code)
				if !ok {
					d := Diagnostic{Row: r, Col: c, Layer: k, Code: code}
					diags = append(diags, d)
					logger.Warning("unknown template code", "code", code, "row", r, "col", c, "layer", k)
					continue
				}
				grid.Set(r, c, k, kind)
			}
		}
	}

	tagDescendingRamps(grid)

	return grid, diags
}

// tagDescendingRamps marks every ramp that sits directly on top of a ramp
// with the same orientation as its Down variant
func tagDescendingRamps(grid *entity.Grid) {
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			for k := grid.Depth() - 1; k > 0; k-- {
				upper := grid.At(r, c, k)
				if !upper.IsRamp() || upper.IsDescending() {
					continue
				}
				if grid.At(r, c, k-1).Descending() == upper.Descending() {
					grid.Set(r, c, k, upper.Descending())
				}
			}
		}
	}
}
