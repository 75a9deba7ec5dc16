package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/radutopala/shopsearch/internal/catalog"
)

// Client is a connection to a storefront MCP server.
type Client struct {
	name    string
	session *mcp.ClientSession
	logger  *slog.Logger
}

// ServerConfig represents how to reach a storefront MCP server.
// Supports multiple transport types:
// - Command transport (stdio): Provide "command" field
// - HTTP transport (Streamable HTTP): Provide "url" field
type ServerConfig struct {
	Command string            `json:"command,omitempty"` // Command to execute (for stdio transport)
	Args    []string          `json:"args,omitempty"`    // Command arguments
	URL     string            `json:"url,omitempty"`     // HTTP URL (for Streamable HTTP transport)
	Env     map[string]string `json:"env,omitempty"`     // Environment variables (stdio only)
}

// SearchParams are the arguments of product_search.
type SearchParams struct {
	Query       string `json:"query,omitempty"`
	Category    string `json:"category,omitempty"`
	DetailLevel string `json:"detail_level,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

// SearchPage is one page of product_search results.
type SearchPage struct {
	Query         string                   `json:"query"`
	TotalCount    int                      `json:"total_count"`
	ReturnedCount int                      `json:"returned_count"`
	Offset        int                      `json:"offset"`
	Limit         int                      `json:"limit"`
	HasMore       bool                     `json:"has_more"`
	Products      []catalog.ProductSummary `json:"products"`
}

// NewClient connects to a storefront server described by config.
// Streamable HTTP is used when config.URL is set, otherwise the command is
// started and spoken to over stdio.
func NewClient(ctx context.Context, name string, config ServerConfig, logger *slog.Logger) (*Client, error) {
	var transport mcp.Transport

	if config.URL != "" {
		transport = &mcp.StreamableClientTransport{
			Endpoint:   config.URL,
			MaxRetries: 5,
		}
		logger.Info("Using Streamable HTTP transport", "name", name, "endpoint", config.URL)
	} else if config.Command != "" {
		cmd := exec.Command(config.Command, config.Args...)

		if len(config.Env) > 0 {
			env := os.Environ()
			for k, v := range config.Env {
				env = append(env, fmt.Sprintf("%s=%s", k, v))
			}
			cmd.Env = env
		}

		transport = &mcp.CommandTransport{
			Command: cmd,
		}
		logger.Info("Using stdio transport", "name", name, "command", config.Command)
	} else {
		return nil, fmt.Errorf("no transport configured: must provide either 'command' or 'url'")
	}

	return Connect(ctx, name, transport, logger)
}

// Connect opens a session over an arbitrary transport.
func Connect(ctx context.Context, name string, transport mcp.Transport, logger *slog.Logger) (*Client, error) {
	client := mcp.NewClient(
		&mcp.Implementation{
			Name:    "storefront-client",
			Version: "1.0.0",
		},
		nil,
	)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storefront server %s: %w", name, err)
	}

	logger.Info("Connected to storefront server", "name", name)

	return &Client{
		name:    name,
		session: session,
		logger:  logger,
	}, nil
}

// SearchProducts runs product_search on the server.
func (c *Client) SearchProducts(ctx context.Context, params SearchParams) (*SearchPage, error) {
	var page SearchPage
	if err := c.call(ctx, "product_search", params, &page); err != nil {
		return nil, err
	}

	c.logger.Debug("Searched products", "name", c.name, "query", params.Query, "total", page.TotalCount, "returned", page.ReturnedCount)
	return &page, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.call(ctx, "product_get", map[string]any{"id": id}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories lists the catalog categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var result struct {
		Categories []string `json:"categories"`
	}
	if err := c.call(ctx, "product_categories", map[string]any{}, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// call executes a tool and decodes its single JSON text content into out.
func (c *Client) call(ctx context.Context, toolName string, arguments any, out any) error {
	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: arguments,
	})
	if err != nil {
		return fmt.Errorf("tools/call %s failed: %w", toolName, err)
	}

	text := ""
	if len(result.Content) > 0 {
		if textContent, ok := result.Content[0].(*mcp.TextContent); ok {
			text = textContent.Text
		}
	}

	if result.IsError {
		if text == "" {
			text = "unknown error"
		}
		return fmt.Errorf("%s: %s", toolName, text)
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", toolName, err)
	}
	return nil
}

// Close terminates the connection to the storefront server.
func (c *Client) Close() error {
	if err := c.session.Close(); err != nil {
		c.logger.Warn("Storefront server close error", "name", c.name, "error", err)
		return err
	}

	c.logger.Info("Closed storefront server connection", "name", c.name)
	return nil
}
