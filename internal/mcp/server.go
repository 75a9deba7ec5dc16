package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/radutopala/shopsearch/internal/catalog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Detail levels accepted by product_search
const (
	DetailNamesOnly = "names_only"
	DetailSummary   = "summary"
	DetailDetailed  = "detailed"
)

// StorefrontServer exposes the product catalog to MCP clients
type StorefrontServer struct {
	server            *mcp.Server
	logger            *slog.Logger
	catalog           *catalog.Catalog
	searchResultLimit int // Number of products to return per search
}

// NewStorefrontServer creates a server over the configured catalog
func NewStorefrontServer(name, version string, logger *slog.Logger) (*StorefrontServer, error) {
	s := &StorefrontServer{
		logger:            logger,
		searchResultLimit: defaultSearchResultLimit,
	}

	config, err := s.loadConfig()
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "error", err)
		config = &Config{}
	}
	if config.Settings.SearchResultLimit > 0 {
		s.searchResultLimit = config.Settings.SearchResultLimit
		logger.Info("Using custom search result limit", "limit", config.Settings.SearchResultLimit)
	}

	products, err := s.loadProducts(config.Settings.CatalogPath)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(logger)
	if err := cat.RegisterAll(products); err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	return newStorefrontServer(name, version, cat, s.searchResultLimit, logger), nil
}

// NewStorefrontServerWithCatalog creates a server over an existing catalog
func NewStorefrontServerWithCatalog(name, version string, cat *catalog.Catalog, searchResultLimit int, logger *slog.Logger) *StorefrontServer {
	if searchResultLimit <= 0 {
		searchResultLimit = defaultSearchResultLimit
	}
	return newStorefrontServer(name, version, cat, searchResultLimit, logger)
}

func newStorefrontServer(name, version string, cat *catalog.Catalog, limit int, logger *slog.Logger) *StorefrontServer {
	s := &StorefrontServer{
		logger:            logger,
		catalog:           cat,
		searchResultLimit: limit,
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    name,
			Version: version,
		},
		&mcp.ServerOptions{
			Logger: logger,
		},
	)
	s.registerTools(server)
	s.server = server

	logger.Info("Storefront server ready", "products", cat.Len(), "search_result_limit", limit)
	return s
}

// loadProducts reads the catalog file, or the seed catalog when path is empty
func (s *StorefrontServer) loadProducts(path string) ([]*catalog.Product, error) {
	if path == "" {
		s.logger.Info("No catalog path configured, using seed catalog")
		return catalog.Seed(), nil
	}

	products, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	s.logger.Info("Loaded catalog", "path", path, "products", len(products))
	return products, nil
}

// Catalog returns the catalog served by s
func (s *StorefrontServer) Catalog() *catalog.Catalog {
	return s.catalog
}

// Server returns the underlying MCP server
func (s *StorefrontServer) Server() *mcp.Server {
	return s.server
}

// Run starts the MCP server with the given transport
func (s *StorefrontServer) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// HTTPHandler serves the MCP server over Streamable HTTP
func (s *StorefrontServer) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// === TOOL REGISTRATION ===

func (s *StorefrontServer) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "product_search",
		Description: "Search the product catalog with free text. Tolerates typos and understands shopping intents (e.g., 'oil for dry skin', 'energy', 'healthy snack'). Returns products ranked by relevance, paginated. An empty query lists the catalog.",
	}, s.handleProductSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "product_get",
		Description: "Get a single product by id, including price, stock and reviews.",
	}, s.handleProductGet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "product_categories",
		Description: "List the product categories available for filtering product_search.",
	}, s.handleProductCategories)
}

// === TOOL HANDLERS ===

// ProductSearchInput defines the input for product_search
type ProductSearchInput struct {
	Query       string `json:"query,omitempty" jsonschema:"Free text search (e.g., 'shilajit', 'oil for dry skin', 'healthy snack'). Empty lists all products."`
	Category    string `json:"category,omitempty" jsonschema:"Optional category filter (case-insensitive exact match)"`
	DetailLevel string `json:"detail_level,omitempty" jsonschema:"Detail level: 'names_only', 'summary' (adds description), 'detailed' (adds brand, price, stock, rating and relevance score). Default: 'summary'."`
	Offset      int    `json:"offset,omitempty" jsonschema:"Number of results to skip for pagination. Default: 0"`
}

func (s *StorefrontServer) handleProductSearch(ctx context.Context, req *mcp.CallToolRequest, input ProductSearchInput) (*mcp.CallToolResult, any, error) {
	detailLevel := input.DetailLevel
	if detailLevel == "" {
		detailLevel = DetailSummary
	}

	limit := s.searchResultLimit

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	s.logger.InfoContext(ctx, "Product search request", "query", input.Query, "category", input.Category, "detail_level", detailLevel, "offset", offset, "limit", limit)

	hits := s.catalog.Search(input.Query, input.Category)
	totalCount := len(hits)

	// Apply pagination
	start := offset
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}
	page := hits[start:end]

	s.logger.InfoContext(ctx, "Product search response", "total_found", totalCount, "returned", len(page), "offset", offset, "limit", limit)

	products := make([]catalog.ProductSummary, len(page))
	for i, hit := range page {
		products[i] = summarize(hit, detailLevel)
	}

	return jsonResult(map[string]any{
		"query":          input.Query,
		"total_count":    totalCount,
		"returned_count": len(products),
		"offset":         offset,
		"limit":          limit,
		"has_more":       end < totalCount,
		"products":       products,
	})
}

// summarize renders a hit at the requested detail level
func summarize(hit catalog.Hit, detailLevel string) catalog.ProductSummary {
	p := hit.Product
	summary := catalog.ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
	}

	if detailLevel != DetailNamesOnly {
		summary.Description = p.Description
	}

	if detailLevel == DetailDetailed {
		price, stock, rating, score := p.Price, p.CountInStock, p.Rating, hit.Score
		summary.Brand = p.Brand
		summary.Price = &price
		summary.CountInStock = &stock
		summary.Rating = &rating
		summary.Score = &score
	}

	return summary
}

// ProductGetInput defines the input for product_get
type ProductGetInput struct {
	ID string `json:"id" jsonschema:"Product id as returned by product_search"`
}

func (s *StorefrontServer) handleProductGet(ctx context.Context, req *mcp.CallToolRequest, input ProductGetInput) (*mcp.CallToolResult, any, error) {
	product, err := s.catalog.Get(input.ID)
	if err != nil {
		if !errors.Is(err, catalog.ErrProductNotFound) {
			s.logger.ErrorContext(ctx, "Product lookup failed", "id", input.ID, "error", err)
		}
		return errorResult(err), nil, nil
	}

	return jsonResult(product)
}

// ProductCategoriesInput defines the input for product_categories
type ProductCategoriesInput struct{}

func (s *StorefrontServer) handleProductCategories(ctx context.Context, req *mcp.CallToolRequest, input ProductCategoriesInput) (*mcp.CallToolResult, any, error) {
	return jsonResult(map[string]any{
		"categories": s.catalog.Categories(),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: err.Error()},
		},
	}
}
