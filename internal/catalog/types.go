package catalog

import (
	"github.com/radutopala/shopsearch/internal/search"
)

// Review is a shopper review attached to a product.
type Review struct {
	ID        string  `json:"_id,omitempty"`
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// Product represents a single catalog entry.
type Product struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Image        string   `json:"image,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	CountInStock int      `json:"countInStock"`
	Rating       float64  `json:"rating"`     // Average rating
	NumReviews   int      `json:"numReviews"` // Number of reviews
	Reviews      []Review `json:"reviews,omitempty"`
}

// SearchDocument exposes the text fields that take part in ranking.
func (p *Product) SearchDocument() search.Document {
	return search.Document{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
	}
}

// InStock reports whether the product can be ordered.
func (p *Product) InStock() bool {
	return p.CountInStock > 0
}

// Hit is a ranked product with its relevance score. Score is zero when the
// query carried no effective terms.
type Hit struct {
	Product *Product
	Score   int
}

// ProductSummary represents product information for search results.
type ProductSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  string   `json:"description,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	CountInStock *int     `json:"count_in_stock,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Score        *int     `json:"score,omitempty"`
}
