package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnavailable covers every way the catalog can fail to load: missing file,
// unreadable file, corrupt JSON, or an entry missing a mandatory field.
// Callers surface it to the user as a generic catalog error, never as a fault.
var ErrUnavailable = errors.New("catalog unavailable")

// MalformedEntryError reports a catalog entry missing a mandatory field.
type MalformedEntryError struct {
	Index int
	Field string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("catalog entry %d: missing %s", e.Index, e.Field)
}

func (e *MalformedEntryError) Is(target error) bool {
	return target == ErrUnavailable
}

// Product is one catalog entry, immutable once loaded.
type Product struct {
	Title               string
	Description         string
	DetailedDescription DetailNode
	ProductURL          string
}

// Store reads products from a local JSON file. Load re-reads the file on
// every call; the catalog is small and read infrequently, so staleness and
// caching are deliberately not a concern here.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

type catalogFile struct {
	Products []productEntry `json:"products"`
}

type productEntry struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	DetailedDescription DetailNode `json:"detailed_description"`
	ProductURL          string     `json:"product_url"`
}

func (s *Store) Load() ([]Product, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var f catalogFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, s.path, err)
	}
	out := make([]Product, 0, len(f.Products))
	for i, e := range f.Products {
		if strings.TrimSpace(e.Title) == "" {
			return nil, &MalformedEntryError{Index: i, Field: "title"}
		}
		if strings.TrimSpace(e.Description) == "" {
			return nil, &MalformedEntryError{Index: i, Field: "description"}
		}
		out = append(out, Product{
			Title:               e.Title,
			Description:         e.Description,
			DetailedDescription: e.DetailedDescription,
			ProductURL:          e.ProductURL,
		})
	}
	return out, nil
}

// FindByTitle returns the product whose title matches case-insensitively,
// or nil when there is no match. First match wins on duplicate titles.
func (s *Store) FindByTitle(title string) (*Product, error) {
	products, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if strings.EqualFold(products[i].Title, title) {
			return &products[i], nil
		}
	}
	return nil, nil
}
