package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-insurepredict/pkg/model"
)

//go:embed data/catalog.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/catalog.yaml"

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
	defaultErr     error
)

// Catalog is the validated, normalised form of a catalog document.
type Catalog struct {
	Cities []string
	Tier1  []string
	Tier2  []string
}

type document struct {
	Cities []string `yaml:"cities"`
	Tiers  struct {
		Tier1 []string `yaml:"tier1"`
		Tier2 []string `yaml:"tier2"`
	} `yaml:"tiers"`
}

// Default returns a copy of the embedded catalog.
func Default() (Catalog, error) {
	defaultOnce.Do(func() {
		data, err := dataFS.ReadFile(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Load(bytes.NewReader(data))
	})
	if defaultErr != nil {
		return Catalog{}, defaultErr
	}
	return defaultCatalog.clone(), nil
}

// MustDefault panics when the embedded catalog cannot be parsed.
func MustDefault() Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load parses a YAML catalog. Blank entries are dropped and duplicates are
// removed while preserving order. A city may belong to at most one tier.
func Load(r io.Reader) (Catalog, error) {
	if r == nil {
		return Catalog{}, fmt.Errorf("catalog: missing reader")
	}

	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}

	c := Catalog{
		Cities: normaliseList(doc.Cities),
		Tier1:  normaliseList(doc.Tiers.Tier1),
		Tier2:  normaliseList(doc.Tiers.Tier2),
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks the tier partition is well formed.
func (c Catalog) Validate() error {
	if len(c.Cities) == 0 {
		return fmt.Errorf("catalog: at least one city is required")
	}
	tier1 := make(map[string]struct{}, len(c.Tier1))
	for _, city := range c.Tier1 {
		tier1[cityKey(city)] = struct{}{}
	}
	for _, city := range c.Tier2 {
		if _, ok := tier1[cityKey(city)]; ok {
			return fmt.Errorf("catalog: city %q listed in both tier1 and tier2", city)
		}
	}
	return nil
}

// Category returns the tier of city. Matching ignores surrounding
// whitespace and case; unknown cities are Tier 3.
func (c Catalog) Category(city string) model.CityCategory {
	key := cityKey(city)
	if key == "" {
		return model.CityTier3
	}
	if containsKey(c.Tier1, key) {
		return model.CityTier1
	}
	if containsKey(c.Tier2, key) {
		return model.CityTier2
	}
	return model.CityTier3
}

func (c Catalog) clone() Catalog {
	return Catalog{
		Cities: append([]string(nil), c.Cities...),
		Tier1:  append([]string(nil), c.Tier1...),
		Tier2:  append([]string(nil), c.Tier2...),
	}
}

func containsKey(cities []string, key string) bool {
	for _, city := range cities {
		if cityKey(city) == key {
			return true
		}
	}
	return false
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func normaliseList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		city := strings.TrimSpace(raw)
		if city == "" {
			continue
		}
		key := cityKey(city)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, city)
	}
	return out
}
