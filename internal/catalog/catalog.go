// Package catalog provides the products a shopper can add to the cart.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/trolley/internal/cart"
)

// Product is an entry in the catalog.
type Product struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

// Item converts the product into a cart item.
func (p Product) Item() cart.Item {
	return cart.Item{ID: p.ID, Name: p.Name, Price: p.Price}
}

type file struct {
	Products []Product `yaml:"products"`
}

// Default returns the built-in product list.
func Default() []Product {
	return []Product{
		{ID: "1", Name: "React Course", Price: 49.99},
		{ID: "2", Name: "Node.js Course", Price: 39.99},
		{ID: "3", Name: "JavaScript Bundle", Price: 89.99},
	}
}

// Load reads a YAML catalog. An empty path yields Default.
func Load(path string) ([]Product, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) ([]Product, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}

	seen := make(map[string]struct{}, len(f.Products))
	for i := range f.Products {
		p := &f.Products[i]
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product %d: missing id", i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog product %d: duplicate id %q", i+1, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog product %q: negative price", p.ID)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
	}
	return f.Products, nil
}
