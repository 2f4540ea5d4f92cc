package repository

import (
	"storefront-service/internal/apper"
	"storefront-service/internal/models"
)

// SeedCatalog loads products into an in-memory record store and returns
// the ids it assigned.
func SeedCatalog(client *apper.MemoryClient, products ...models.Product) []int {
	records := make([]apper.Record, 0, len(products))
	for _, p := range products {
		records = append(records, productRecord(p))
	}
	return client.Seed(tableProducts, records...)
}

func productRecord(p models.Product) apper.Record {
	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, c.Name)
	}

	rec := apper.Record{
		colName:        p.Name,
		colDescription: p.Description,
		colPrice:       p.Price,
		colCategory:    p.Category,
		colImages:      joinList(p.Images),
		colRating:      p.Rating,
		colStock:       p.Stock,
		colSizes:       joinList(p.Sizes),
		colColors:      joinList(colors),
		colFeatured:    p.Featured,
		colTags:        joinList(p.Tags),
	}
	if p.OriginalPrice != nil {
		rec[colOriginalPrice] = *p.OriginalPrice
	}
	return rec
}

// DemoCatalog is the catalog served by a memory-backed store started with
// demo data.
func DemoCatalog() []models.Product {
	price := func(v float64) *float64 { return &v }
	colors := func(names ...string) []models.Color {
		out := make([]models.Color, 0, len(names))
		for _, n := range names {
			out = append(out, models.NewColor(n))
		}
		return out
	}

	return []models.Product{
		{
			Name:        "Linen Shirt",
			Description: "Relaxed fit shirt in washed linen.",
			Price:       40,
			Category:    "women",
			Images:      []string{"/images/linen-shirt-front.jpg", "/images/linen-shirt-back.jpg"},
			Rating:      4.4,
			Stock:       25,
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      colors("White", "Beige", "Navy"),
			Featured:    true,
			Tags:        []string{"summer", "linen"},
		},
		{
			Name:          "Wool Coat",
			Description:   "Double-breasted coat in a wool blend.",
			Price:         149,
			OriginalPrice: price(199),
			Category:      "women",
			Images:        []string{"/images/wool-coat.jpg"},
			Rating:        4.7,
			Stock:         8,
			Sizes:         []string{"S", "M", "L"},
			Colors:        colors("Gray", "Black"),
			Featured:      true,
			Tags:          []string{"winter", "outerwear"},
		},
		{
			Name:        "Oxford Shirt",
			Description: "Button-down oxford cotton shirt.",
			Price:       55,
			Category:    "men",
			Images:      []string{"/images/oxford-shirt.jpg"},
			Rating:      4.2,
			Stock:       40,
			Sizes:       []string{"M", "L", "XL"},
			Colors:      colors("Blue", "White"),
			Tags:        []string{"cotton"},
		},
		{
			Name:          "Chino Trousers",
			Description:   "Slim chinos in stretch twill.",
			Price:         48,
			OriginalPrice: price(64),
			Category:      "men",
			Images:        []string{"/images/chinos.jpg"},
			Rating:        3.9,
			Stock:         30,
			Sizes:         []string{"30", "32", "34", "36"},
			Colors:        colors("Beige", "Navy", "Black"),
			Featured:      true,
		},
		{
			Name:        "Leather Belt",
			Description: "Full-grain leather belt with brass buckle.",
			Price:       35,
			Category:    "accessories",
			Images:      []string{"/images/belt.jpg"},
			Rating:      4.5,
			Stock:       60,
			Colors:      colors("Brown", "Black"),
		},
		{
			Name:        "Canvas Sneakers",
			Description: "Low-top canvas sneakers with rubber sole.",
			Price:       70,
			Category:    "shoes",
			Images:      []string{"/images/sneakers.jpg"},
			Rating:      4.1,
			Stock:       18,
			Sizes:       []string{"38", "39", "40", "41", "42", "43"},
			Colors:      colors("White", "Red"),
			Featured:    true,
			Tags:        []string{"casual"},
		},
	}
}
