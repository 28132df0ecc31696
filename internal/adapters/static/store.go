// Package static serves the content and product records shipped with the
// site. The YAML seed files are embedded in the binary; a directory named in
// the configuration can replace any of them without a rebuild.
package static

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

// SourceName identifies the static data set.
const SourceName = "static"

const productsFile = "products.yaml"

//go:embed data/*.yaml
var seed embed.FS

// kindFiles maps each content kind to its seed file.
var kindFiles = map[domain.Kind]string{
	domain.KindBlog:      "blog.yaml",
	domain.KindNews:      "news.yaml",
	domain.KindCaseStudy: "case-studies.yaml",
}

// Store holds the decoded static data set. It is read-only after Load.
type Store struct {
	entries  map[domain.Kind][]domain.Entry
	products []domain.Product
}

var (
	_ ports.ContentSource  = (*Store)(nil)
	_ ports.ProductCatalog = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

// Load decodes every seed file. When dir is non-empty, a file of the same
// name in dir takes precedence over the embedded copy.
func Load(dir string) (*Store, error) {
	s := &Store{entries: make(map[domain.Kind][]domain.Entry, len(kindFiles))}

	for kind, name := range kindFiles {
		data, err := readSeed(dir, name)
		if err != nil {
			return nil, err
		}

		entries, err := DecodeEntries(bytes.NewReader(data), kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		s.entries[kind] = entries
	}

	data, err := readSeed(dir, productsFile)
	if err != nil {
		return nil, err
	}

	s.products, err = DecodeProducts(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", productsFile, err)
	}

	return s, nil
}

func readSeed(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}

	data, err := seed.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", name, err)
	}

	return data, nil
}

// Name implements ports.ContentSource and ports.HealthChecker.
func (s *Store) Name() string { return SourceName }

// Entries implements ports.ContentSource.
func (s *Store) Entries(ctx context.Context, kind domain.Kind) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return slices.Clone(s.entries[kind]), nil
}

// Products implements ports.ProductCatalog.
func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return slices.Clone(s.products), nil
}

// Product implements ports.ProductCatalog.
func (s *Store) Product(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, ok := domain.FindProduct(s.products, id)
	if !ok {
		return nil, domain.NewNotFoundError("product", id)
	}

	return &p, nil
}

// Check implements ports.HealthChecker. The data set is usable as long as
// it holds at least one product.
func (s *Store) Check(context.Context) error {
	if len(s.products) == 0 {
		return errors.New("product catalog is empty")
	}

	return nil
}

// Counts returns the number of records per collection, for operator output.
func (s *Store) Counts() map[string]int {
	out := make(map[string]int, len(s.entries)+1)
	for kind, entries := range s.entries {
		out[string(kind)] = len(entries)
	}

	out["product"] = len(s.products)

	return out
}
