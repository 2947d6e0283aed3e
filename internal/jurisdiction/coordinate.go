package jurisdiction

import (
	"strings"

	"premalloc/internal/model"
)

// CoordinateFallbackCode is the sentinel code of the coordinate-bucket
// strategy. Distinct from the table strategy's sentinel; the two
// strategies come from parallel report families and stay separate.
const CoordinateFallbackCode = "00-00000"

type countyBox struct {
	county         string
	code           string
	minLat, maxLat float64
	minLng, maxLng float64
}

type cityCounty struct {
	city   string
	county string
	code   string
}

// CoordinateResolver buckets coordinates into county bounding boxes,
// falling back to city-name matching when no coordinates are available.
// Boxes are approximate and checked in declaration order; the first hit
// wins.
type CoordinateResolver struct {
	boxes  []countyBox
	cities []cityCounty
}

// NewCoordinateResolver creates a resolver over the built-in Kentucky
// county boxes.
func NewCoordinateResolver() *CoordinateResolver {
	return &CoordinateResolver{
		boxes: []countyBox{
			{county: "JEFFERSON COUNTY", code: "56-00000", minLat: 38.0, maxLat: 38.5, minLng: -85.8, maxLng: -85.4},
			{county: "FAYETTE COUNTY", code: "34-00000", minLat: 37.8, maxLat: 38.2, minLng: -84.8, maxLng: -84.2},
			{county: "KENTON COUNTY", code: "59-00000", minLat: 39.0, maxLat: 39.2, minLng: -84.8, maxLng: -84.4},
			{county: "BOONE COUNTY", code: "08-00000", minLat: 38.9, maxLat: 39.1, minLng: -85.0, maxLng: -84.6},
			{county: "CAMPBELL COUNTY", code: "19-00000", minLat: 39.0, maxLat: 39.2, minLng: -84.6, maxLng: -84.3},
		},
		cities: []cityCounty{
			{city: "LOUISVILLE", county: "JEFFERSON COUNTY", code: "56-00000"},
			{city: "LEXINGTON", county: "FAYETTE COUNTY", code: "34-00000"},
			{city: "COVINGTON", county: "KENTON COUNTY", code: "59-00000"},
			{city: "FLORENCE", county: "BOONE COUNTY", code: "08-00000"},
			{city: "NEWPORT", county: "CAMPBELL COUNTY", code: "19-00000"},
		},
	}
}

// Resolve buckets the coordinates when present, otherwise matches the
// city name against the known municipality list. Unknown inputs fall
// back to UNKNOWN COUNTY with the strategy's sentinel code.
func (r *CoordinateResolver) Resolve(city string, coords *model.Coordinates) model.Jurisdiction {
	if coords != nil {
		for _, box := range r.boxes {
			if coords.Latitude >= box.minLat && coords.Latitude <= box.maxLat &&
				coords.Longitude >= box.minLng && coords.Longitude <= box.maxLng {
				return model.Jurisdiction{Name: box.county, Code: box.code, County: box.county}
			}
		}
		return r.fallback()
	}

	name := normalizeCity(city)
	for _, c := range r.cities {
		if strings.Contains(name, c.city) {
			return model.Jurisdiction{Name: c.county, Code: c.code, County: c.county}
		}
	}
	return r.fallback()
}

func (r *CoordinateResolver) fallback() model.Jurisdiction {
	return model.Jurisdiction{Name: "UNKNOWN COUNTY", Code: CoordinateFallbackCode, County: "UNKNOWN COUNTY"}
}
