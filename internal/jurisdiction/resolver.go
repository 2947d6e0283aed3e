// Package jurisdiction maps a record's location to the tax entity its
// premium is allocated to.
//
// Two resolution strategies exist in parallel and are never merged:
// table lookup by municipality name (fallback sentinel "9998") and
// coordinate bucketing by county bounding box (fallback "00-00000").
// Callers pick one; both are pure and total.
package jurisdiction

import (
	"fmt"
	"strings"

	"premalloc/internal/model"
)

// FallbackCode is the sentinel jurisdiction code for municipalities not
// present in the lookup table. Such records allocate at county level.
const FallbackCode = "9998"

// Resolver maps a (city, coordinates) pair to a jurisdiction. Resolve
// must be deterministic, must not touch the network and must never
// panic; unknown inputs produce a synthesized county-level fallback.
type Resolver interface {
	Resolve(city string, coords *model.Coordinates) model.Jurisdiction
}

// Entry is one municipality row in a lookup table.
type Entry struct {
	Code   string `yaml:"code"`
	County string `yaml:"county"`
}

// TableResolver resolves by exact lookup in an immutable municipality
// table keyed by uppercased, trimmed city name.
type TableResolver struct {
	table map[string]Entry
}

// NewTableResolver creates a resolver over a copy of the given table.
// Keys are normalized on the way in so lookups are case-insensitive.
func NewTableResolver(table map[string]Entry) *TableResolver {
	normalized := make(map[string]Entry, len(table))
	for city, entry := range table {
		normalized[normalizeCity(city)] = entry
	}
	return &TableResolver{table: normalized}
}

// Resolve looks the city up in the table. Misses synthesize a
// "{CITY} COUNTY" entry with the reserved fallback code. Coordinates
// are ignored by this strategy.
func (r *TableResolver) Resolve(city string, _ *model.Coordinates) model.Jurisdiction {
	name := normalizeCity(city)
	if entry, ok := r.table[name]; ok {
		return model.Jurisdiction{Name: name, Code: entry.Code, County: entry.County}
	}
	county := name + " COUNTY"
	return model.Jurisdiction{Name: county, Code: FallbackCode, County: county}
}

func normalizeCity(city string) string {
	return strings.ToUpper(strings.TrimSpace(city))
}

// New builds a resolver from configuration: strategy selection plus an
// optional YAML municipality table for the table strategy.
func New(cfg model.JurisdictionConfig) (Resolver, error) {
	switch cfg.Strategy {
	case "", "table":
		table := DefaultTable()
		if cfg.TablePath != "" {
			loaded, err := LoadTable(cfg.TablePath)
			if err != nil {
				return nil, fmt.Errorf("load jurisdiction table: %w", err)
			}
			table = loaded
		}
		return NewTableResolver(table), nil
	case "coordinate":
		return NewCoordinateResolver(), nil
	default:
		return nil, fmt.Errorf("unknown jurisdiction strategy: %s (supported: table, coordinate)", cfg.Strategy)
	}
}
