package models

// Tile is one dashboard entry.
type Tile struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	Variant   string `json:"variant"`
	Available bool   `json:"available"`
}
