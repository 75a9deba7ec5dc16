package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed seed.json
var seedJSON []byte

// Load decodes a JSON array of products.
func Load(r io.Reader) ([]*Product, error) {
	var products []*Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return products, nil
}

// LoadFile reads a JSON catalog file.
func LoadFile(path string) ([]*Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Seed returns a fresh copy of the built-in demo catalog.
func Seed() []*Product {
	var products []*Product
	if err := json.Unmarshal(seedJSON, &products); err != nil {
		panic(fmt.Sprintf("catalog: invalid seed catalog: %v", err))
	}
	return products
}
