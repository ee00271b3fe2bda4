package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPackageNotFound  = errors.New("catalog: package not found")
	ErrDuplicatePackage = errors.New("catalog: duplicate package id")
	ErrInvalidPackage   = errors.New("catalog: invalid package")
)

type PackageID string

// Package is a read-only catalog entry.
type Package struct {
	ID           PackageID `json:"id"`
	Destination  string    `json:"destination"`
	DurationDays int       `json:"duration_days"`
	BasePrice    int64     `json:"base_price"`
	Season       Season    `json:"season"`
	Highlights   string    `json:"highlights"`
}

// NominalNights is the stay length the package price is quoted for.
func (p Package) NominalNights() int {
	return p.DurationDays - 1
}

func (p Package) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPackage)
	}
	if p.DurationDays <= 0 {
		return fmt.Errorf("%w: %s duration must be positive", ErrInvalidPackage, p.ID)
	}
	if p.BasePrice <= 0 {
		return fmt.Errorf("%w: %s base price must be positive", ErrInvalidPackage, p.ID)
	}
	if !p.Season.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownSeason, p.ID)
	}
	return nil
}

// Catalog is an immutable, ordered set of packages. The zero value is an empty catalog.
type Catalog struct {
	items []Package
	index map[PackageID]int
}

// New validates the packages and freezes them into a catalog.
func New(packages []Package) (*Catalog, error) {
	c := &Catalog{
		items: make([]Package, 0, len(packages)),
		index: make(map[PackageID]int, len(packages)),
	}
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePackage, p.ID)
		}
		c.index[p.ID] = len(c.items)
		c.items = append(c.items, p)
	}
	return c, nil
}

// MustNew panics on invalid input; used for the built-in data set.
func MustNew(packages []Package) *Catalog {
	c, err := New(packages)
	if err != nil {
		panic(err)
	}
	return c
}

// ByID returns a copy of the package with the given id.
func (c *Catalog) ByID(id PackageID) (Package, error) {
	if c == nil {
		return Package{}, ErrPackageNotFound
	}
	i, ok := c.index[id]
	if !ok {
		return Package{}, ErrPackageNotFound
	}
	return c.items[i], nil
}

// All returns the packages in catalog order. The slice is a copy.
func (c *Catalog) All() []Package {
	if c == nil {
		return nil
	}
	return append([]Package(nil), c.items...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}
