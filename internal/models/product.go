package models

import "time"

type Product struct {
	ProductID     int       `json:"Id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	Category      string    `json:"category"`
	Images        []string  `json:"images"`
	Rating        float64   `json:"rating"`
	Stock         int       `json:"stock"`
	Sizes         []string  `json:"sizes"`
	Colors        []Color   `json:"colors"`
	Featured      bool      `json:"featured"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OnSale reports whether the product carries an original price above its
// current price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && p.Price < *p.OriginalPrice
}

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

const defaultColorHex = "#CCCCCC"

var colorHex = map[string]string{
	"Black": "#000000",
	"White": "#FFFFFF",
	"Gray":  "#8B8B8B",
	"Navy":  "#1F2937",
	"Brown": "#8B4513",
	"Beige": "#F5F5DC",
	"Red":   "#EF4444",
	"Blue":  "#3B82F6",
}

func NewColor(name string) Color {
	return Color{Name: name, Hex: ColorHex(name)}
}

func ColorHex(name string) string {
	if hex, ok := colorHex[name]; ok {
		return hex
	}
	return defaultColorHex
}
