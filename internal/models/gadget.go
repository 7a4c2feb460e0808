package models

// Gadget is a catalog entry. The core treats the catalog as read-only;
// gadgets are seeded out of band.
type Gadget struct {
	ID               string   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name             string   `bson:"name" json:"name"`
	Category         string   `bson:"category" json:"category"`
	Description      string   `bson:"description" json:"description"`
	PricePerDay      float64  `bson:"price_per_day" json:"price_per_day"`
	PricePerWeek     float64  `bson:"price_per_week" json:"price_per_week"`
	PricePerMonth    float64  `bson:"price_per_month" json:"price_per_month"`
	Images           []string `bson:"images" json:"images"`
	AverageRating    float64  `bson:"average_rating" json:"average_rating"`
	TotalRentalCount int      `bson:"total_rental_count" json:"total_rental_count"`
}

// GadgetSummary is the shaped catalog row returned by the listing and
// featured endpoints.
type GadgetSummary struct {
	ID               string  `json:"_id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Image            string  `json:"image"`
	PricePerDay      float64 `json:"price_per_day"`
	AverageRating    float64 `json:"average_rating"`
	TotalRentalCount int     `json:"total_rental_count"`
}

func (g *Gadget) Summary() GadgetSummary {
	image := ""
	if len(g.Images) > 0 {
		image = g.Images[0]
	}
	return GadgetSummary{
		ID:               g.ID,
		Name:             g.Name,
		Category:         g.Category,
		Image:            image,
		PricePerDay:      g.PricePerDay,
		AverageRating:    g.AverageRating,
		TotalRentalCount: g.TotalRentalCount,
	}
}
