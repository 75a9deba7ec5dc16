package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/radutopala/shopsearch/internal/catalog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StorefrontServerTestSuite is the test suite for StorefrontServer
type StorefrontServerTestSuite struct {
	suite.Suite
	server *StorefrontServer
	ctx    context.Context
}

// SetupTest runs before each test
func (s *StorefrontServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	cat := catalog.New(logger)
	require.NoError(s.T(), cat.RegisterAll(catalog.Seed()), "Failed to build test catalog")

	s.server = NewStorefrontServerWithCatalog("test-server", "1.0.0", cat, 5, logger)
	s.ctx = context.Background()
}

// parseResponse is a helper to parse JSON text responses
func (s *StorefrontServerTestSuite) parseResponse(result *mcp.CallToolResult) map[string]any {
	require.NotNil(s.T(), result)
	require.False(s.T(), result.IsError)
	require.Len(s.T(), result.Content, 1)

	text := result.Content[0].(*mcp.TextContent).Text
	var response map[string]any
	err := json.Unmarshal([]byte(text), &response)
	require.NoError(s.T(), err, "Failed to parse response")

	return response
}

func (s *StorefrontServerTestSuite) productIDs(response map[string]any) []string {
	products := response["products"].([]any)
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.(map[string]any)["id"].(string)
	}
	return ids
}

// TestProductSearch_NamesOnly tests the names_only detail level
func (s *StorefrontServerTestSuite) TestProductSearch_NamesOnly() {
	result, _, err := s.server.handleProductSearch(s.ctx, nil, ProductSearchInput{
		DetailLevel: DetailNamesOnly,
	})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), float64(10), response["total_count"])

	first := response["products"].([]any)[0].(map[string]any)
	require.Contains(s.T(), first, "name")
	require.Contains(s.T(), first, "category")
	require.NotContains(s.T(), first, "description", "names_only should omit description")
}

// TestProductSearch_Summary tests the default summary detail level
func (s *StorefrontServerTestSuite) TestProductSearch_Summary() {
	result, _, err := s.server.handleProductSearch(s.ctx, nil, ProductSearchInput{
		Query: "apricot",
	})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), float64(2), response["total_count"])
	require.Equal(s.T(), []string{"p3", "p6"}, s.productIDs(response))

	first := response["products"].([]any)[0].(map[string]any)
	require.NotEmpty(s.T(), first["description"], "summary should include description")
	require.NotContains(s.T(), first, "price", "summary should not include price")
	require.NotContains(s.T(), first, "score", "summary should not include score")
}

// TestProductSearch_Detailed tests the detailed detail level
func (s *StorefrontServerTestSuite) TestProductSearch_Detailed() {
	result, _, err := s.server.handleProductSearch(s.ctx, nil, ProductSearchInput{
		Query:       "walnut oil",
		DetailLevel: DetailDetailed,
	})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), []string{"p4", "p3", "p5"}, s.productIDs(response))

	first := response["products"].([]any)[0].(map[string]any)
	require.Equal(s.T(), float64(124), first["score"])
	require.Equal(s.T(), float64(2100), first["price"])
	require.Equal(s.T(), float64(0), first["count_in_stock"])
	require.Equal(s.T(), "Skardu Organics", first["brand"])
}

// TestProductSearch_Typo tests that misspelled queries still find products
func (s *StorefrontServerTestSuite) TestProductSearch_Typo() {
	result, _, err := s.server.handleProductSearch(s.ctx, nil, ProductSearchInput{Query: "shilajt"})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), []string{"p1", "p2"}, s.productIDs(response))
}

// TestProductSearch_Category tests the category filter
func (s *StorefrontServerTestSuite) TestProductSearch_Category() {
	result, _, err := s.server.handleProductSearch(s.ctx, nil, ProductSearchInput{
		Query:    "apricot",
		Category: "dry fruits",
	})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), []string{"p6"}, s.productIDs(response))
}

// TestProductSearch_NoMatches tests an empty result page
func (s *StorefrontServerTestSuite) TestProductSearch_NoMatches() {
	result, _, err := s.server.handleProductSearch(s.ctx, nil, ProductSearchInput{Query: "badam"})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), float64(0), response["total_count"])
	require.Empty(s.T(), response["products"])
	require.Equal(s.T(), false, response["has_more"])
}

// TestProductSearch_Pagination tests pagination functionality
func (s *StorefrontServerTestSuite) TestProductSearch_Pagination() {
	input := ProductSearchInput{DetailLevel: DetailNamesOnly}

	result, _, err := s.server.handleProductSearch(s.ctx, nil, input)
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), float64(0), response["offset"])
	require.Equal(s.T(), float64(5), response["limit"])
	require.Equal(s.T(), float64(5), response["returned_count"])
	require.Equal(s.T(), true, response["has_more"])
	require.Equal(s.T(), []string{"p1", "p2", "p3", "p4", "p5"}, s.productIDs(response))

	// Second page
	input.Offset = 5
	result, _, err = s.server.handleProductSearch(s.ctx, nil, input)
	require.NoError(s.T(), err)

	response = s.parseResponse(result)
	require.Equal(s.T(), float64(5), response["offset"])
	require.Equal(s.T(), false, response["has_more"])
	require.Equal(s.T(), []string{"p6", "p7", "p8", "p9", "p10"}, s.productIDs(response))

	// Past the end
	input.Offset = 50
	result, _, err = s.server.handleProductSearch(s.ctx, nil, input)
	require.NoError(s.T(), err)

	response = s.parseResponse(result)
	require.Equal(s.T(), float64(0), response["returned_count"])
}

// TestProductSearch_NegativeOffset tests that negative offsets start at zero
func (s *StorefrontServerTestSuite) TestProductSearch_NegativeOffset() {
	result, _, err := s.server.handleProductSearch(s.ctx, nil, ProductSearchInput{Offset: -3})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), float64(0), response["offset"])
}

// TestProductGet tests product lookup
func (s *StorefrontServerTestSuite) TestProductGet() {
	result, _, err := s.server.handleProductGet(s.ctx, nil, ProductGetInput{ID: "p1"})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), "p1", response["_id"])
	require.Equal(s.T(), "Pure Himalayan Shilajit Resin", response["name"])
	require.Len(s.T(), response["reviews"], 2)
}

// TestProductGet_NotFound tests error handling for unknown products
func (s *StorefrontServerTestSuite) TestProductGet_NotFound() {
	result, _, err := s.server.handleProductGet(s.ctx, nil, ProductGetInput{ID: "missing"})
	require.NoError(s.T(), err)
	require.True(s.T(), result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	require.Contains(s.T(), text, "product not found")
}

// TestProductCategories tests category listing
func (s *StorefrontServerTestSuite) TestProductCategories() {
	result, _, err := s.server.handleProductCategories(s.ctx, nil, ProductCategoriesInput{})
	require.NoError(s.T(), err)

	response := s.parseResponse(result)
	require.Equal(s.T(), []any{"Shilajit", "Organic Oils", "Dry Fruits", "Natural Foods"}, response["categories"])
}

// TestInMemoryTransport tests the tools end to end through an MCP session
func (s *StorefrontServerTestSuite) TestInMemoryTransport() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.server.Server().Connect(ctx, serverTransport, nil)
	require.NoError(s.T(), err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(s.T(), err)
	defer session.Close()

	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(s.T(), err)

	names := make([]string, len(tools.Tools))
	for i, t := range tools.Tools {
		names[i] = t.Name
	}
	require.ElementsMatch(s.T(), []string{"product_search", "product_get", "product_categories"}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "product_search",
		Arguments: map[string]any{"query": "stamina"},
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"p1", "p2"}, s.productIDs(s.parseResponse(result)))
}

// TestStorefrontServerTestSuite runs the test suite
func TestStorefrontServerTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontServerTestSuite))
}
