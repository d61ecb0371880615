package config

// LevelConfig is the root config for a level file.
// Template rows run top to bottom; each cell is a colon-separated
// stack of item codes, bottom layer first (e.g. "W:R").
type LevelConfig struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	GridSize float64    `json:"gridSize" yaml:"gridSize"`
	Template [][]string `json:"template" yaml:"template"`
}
