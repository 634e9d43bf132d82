// Package staticcatalog serves the shop catalog from a JSON file on disk,
// falling back to the built-in catalog when no root is configured.
package staticcatalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"
)

const DefaultFile = "catalog.json"

var (
	ErrInvalidCatalogPath = errors.New("invalid catalog filepath")
	ErrInvalidCatalog     = errors.New("invalid catalog")
)

type Provider struct {
	Root string
	File string

	once    sync.Once
	catalog companion.Catalog
	err     error
}

type catalogFile struct {
	Items []companion.CatalogItem `json:"items"`
}

// Catalog loads the file once and serves the cached result afterwards.
func (p *Provider) Catalog(_ context.Context) (companion.Catalog, error) {
	p.once.Do(func() {
		p.catalog, p.err = p.load()
	})
	return p.catalog, p.err
}

func (p *Provider) load() (companion.Catalog, error) {
	if strings.TrimSpace(p.Root) == "" {
		return companion.DefaultCatalog, nil
	}
	name := p.File
	if name == "" {
		name = DefaultFile
	}
	path, err := secureJoin(p.Root, name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f catalogFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return validate(f.Items)
}

func validate(items []companion.CatalogItem) (companion.Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(items))
	out := make(companion.Catalog, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		item.Category = strings.TrimSpace(item.Category)
		if item.Name == "" || item.Category == "" || item.Price <= 0 {
			return nil, fmt.Errorf("%w: item %q needs a name, a category and a positive price", ErrInvalidCatalog, item.Name)
		}
		if item.Price > companion.MaxItemPrice {
			return nil, fmt.Errorf("%w: item %q price %d exceeds %d", ErrInvalidCatalog, item.Name, item.Price, companion.MaxItemPrice)
		}
		key := strings.ToLower(item.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrInvalidCatalog, item.Name)
		}
		seen[key] = struct{}{}
		for _, e := range item.Effects {
			if !companion.IsStat(e.Stat) {
				return nil, fmt.Errorf("%w: item %q affects unknown stat %q", ErrInvalidCatalog, item.Name, e.Stat)
			}
		}
		if item.Rarity == "" {
			item.Rarity = companion.RarityCommon
		}
		out = append(out, item)
	}
	return out, nil
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidCatalogPath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidCatalogPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidCatalogPath
	}
	return target, nil
}
