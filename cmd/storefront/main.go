package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/radutopala/shopsearch/internal/catalog"
	"github.com/radutopala/shopsearch/internal/mcpclient"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "storefront",
		Usage: "Search a product catalog locally or through a storefront MCP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "rank",
				Usage:     "Rank a catalog file against a query",
				ArgsUsage: "QUERY...",
				Action:    rankCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "catalog",
						Aliases: []string{"c"},
						Usage:   "Path to a JSON product catalog (default: built-in seed catalog)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only rank products in this category",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of products to print (0 = all)",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Search through a running storefront MCP server",
				ArgsUsage: "QUERY...",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Streamable HTTP endpoint of the server",
					},
					&cli.StringFlag{
						Name:  "command",
						Usage: "Server command to start over stdio",
					},
					&cli.StringSliceFlag{
						Name:  "arg",
						Usage: "Argument for --command (repeatable)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only return products in this category",
					},
					&cli.StringFlag{
						Name:  "detail",
						Usage: "Detail level: names_only, summary, detailed",
						Value: "detailed",
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of results to skip",
					},
				},
			},
		},
	}
}

func rankCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")

	products := catalog.Seed()
	if path := c.String("catalog"); path != "" {
		loaded, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}
		products = loaded
	}

	cat := catalog.New(slog.Default())
	if err := cat.RegisterAll(products); err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}

	hits := cat.Search(query, c.String("category"))
	if limit := c.Int("limit"); limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	w := c.App.Writer
	if len(hits) == 0 {
		fmt.Fprintf(w, "No products match %q\n", query)
		return nil
	}
	for i, hit := range hits {
		fmt.Fprintf(w, "%d. [%s] %s (%s) score=%d\n", i+1, hit.Product.ID, hit.Product.Name, hit.Product.Category, hit.Score)
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	config := mcpclient.ServerConfig{
		URL:     c.String("url"),
		Command: c.String("command"),
		Args:    c.StringSlice("arg"),
	}

	client, err := mcpclient.NewClient(c.Context, "storefront", config, slog.Default())
	if err != nil {
		return err
	}
	defer client.Close()

	page, err := client.SearchProducts(c.Context, mcpclient.SearchParams{
		Query:       strings.Join(c.Args().Slice(), " "),
		Category:    c.String("category"),
		DetailLevel: c.String("detail"),
		Offset:      c.Int("offset"),
	})
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%d of %d products (offset %d)\n", page.ReturnedCount, page.TotalCount, page.Offset)
	for i, p := range page.Products {
		line := fmt.Sprintf("%d. [%s] %s (%s)", page.Offset+i+1, p.ID, p.Name, p.Category)
		if p.Price != nil {
			line += fmt.Sprintf(" price=%.2f", *p.Price)
		}
		if p.Score != nil {
			line += fmt.Sprintf(" score=%d", *p.Score)
		}
		fmt.Fprintln(w, line)
	}
	if page.HasMore {
		fmt.Fprintf(w, "more results: --offset %d\n", page.Offset+page.ReturnedCount)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
