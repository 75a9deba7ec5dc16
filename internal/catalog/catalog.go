package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/radutopala/shopsearch/internal/search"
)

// ErrProductNotFound is returned when a product ID is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Catalog holds the products available for browsing, in the order they were
// registered. Registration order is the tie-break order for search results.
type Catalog struct {
	mu       sync.RWMutex
	products []*Product
	byID     map[string]*Product
	ranker   *search.Ranker
	logger   *slog.Logger
}

// New creates an empty catalog ranked by search.Default.
func New(logger *slog.Logger) *Catalog {
	return NewWithRanker(search.Default, logger)
}

// NewWithRanker creates an empty catalog ranked by r.
func NewWithRanker(r *search.Ranker, logger *slog.Logger) *Catalog {
	return &Catalog{
		products: make([]*Product, 0),
		byID:     make(map[string]*Product),
		ranker:   r,
		logger:   logger,
	}
}

// Register adds a product to the catalog.
func (c *Catalog) Register(product *Product) error {
	if product == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if product.ID == "" {
		return fmt.Errorf("product id cannot be empty")
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product %s: name cannot be empty", product.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[product.ID]; exists {
		return fmt.Errorf("product %s already registered", product.ID)
	}

	c.products = append(c.products, product)
	c.byID[product.ID] = product
	c.logger.Debug("Registered product", "id", product.ID, "name", product.Name, "category", product.Category)
	return nil
}

// RegisterAll adds products in order and stops at the first failure.
func (c *Catalog) RegisterAll(products []*Product) error {
	for i, p := range products {
		if err := c.Register(p); err != nil {
			return fmt.Errorf("product #%d: %w", i, err)
		}
	}
	c.logger.Info("Registered products", "count", len(products), "total", c.Len())
	return nil
}

// Get retrieves a product by ID.
func (c *Catalog) Get(id string) (*Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, exists := c.byID[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return product, nil
}

// ListAll returns all products in registration order.
func (c *Catalog) ListAll() []*Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]*Product, len(c.products))
	copy(products, c.products)
	return products
}

// Len returns the number of registered products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range c.products {
		key := strings.ToLower(p.Category)
		if p.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// Search ranks the products matching category against query. An empty
// category matches every product; otherwise categories compare
// case-insensitively. A query without effective terms returns the filtered
// catalog in registration order.
func (c *Catalog) Search(query, category string) []Hit {
	candidates := c.ListAll()

	if category != "" {
		filtered := make([]*Product, 0, len(candidates))
		for _, p := range candidates {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		candidates = filtered
	}

	docs := make([]search.Document, len(candidates))
	for i, p := range candidates {
		docs[i] = p.SearchDocument()
	}

	ranked := c.ranker.Hits(query, docs)
	hits := make([]Hit, len(ranked))
	for i, h := range ranked {
		hits[i] = Hit{Product: candidates[h.Index], Score: h.Score}
	}

	c.logger.Debug("Catalog search", "query", query, "category", category, "candidates", len(candidates), "hits", len(hits))
	return hits
}
