package jurisdiction

import (
	"os"
	"path/filepath"
	"testing"

	"premalloc/internal/model"
)

func TestTableResolver_KnownCity(t *testing.T) {
	r := NewTableResolver(DefaultTable())

	tests := []struct {
		city       string
		wantName   string
		wantCode   string
		wantCounty string
	}{
		{"Covington", "COVINGTON", "5", "KENTON COUNTY"},
		{"COVINGTON", "COVINGTON", "5", "KENTON COUNTY"},
		{"  covington  ", "COVINGTON", "5", "KENTON COUNTY"},
		{"Florence", "FLORENCE", "16", "BOONE COUNTY"},
		{"Fort Thomas", "FORT THOMAS", "58", "CAMPBELL COUNTY"},
		{"Newport", "NEWPORT", FallbackCode, "CAMPBELL COUNTY"},
	}

	for _, tt := range tests {
		got := r.Resolve(tt.city, nil)
		if got.Name != tt.wantName || got.Code != tt.wantCode || got.County != tt.wantCounty {
			t.Errorf("Resolve(%q) = %+v, want {%s %s %s}", tt.city, got, tt.wantName, tt.wantCode, tt.wantCounty)
		}
	}
}

func TestTableResolver_UnknownCityFallsBack(t *testing.T) {
	r := NewTableResolver(DefaultTable())

	got := r.Resolve("Paducah", nil)
	want := model.Jurisdiction{Name: "PADUCAH COUNTY", Code: FallbackCode, County: "PADUCAH COUNTY"}
	if got != want {
		t.Errorf("Resolve(Paducah) = %+v, want %+v", got, want)
	}
}

func TestTableResolver_TotalOverArbitraryInput(t *testing.T) {
	r := NewTableResolver(DefaultTable())

	// Every input, including empty, must yield a deterministic
	// jurisdiction with non-empty name and code.
	for _, city := range []string{"", "   ", "lowercase town", "Łódź", "123"} {
		first := r.Resolve(city, nil)
		second := r.Resolve(city, nil)
		if first != second {
			t.Errorf("Resolve(%q) not deterministic: %+v vs %+v", city, first, second)
		}
		if first.Name == "" || first.Code == "" {
			t.Errorf("Resolve(%q) = %+v, want non-empty name and code", city, first)
		}
	}
}

func TestTableResolver_IgnoresCoordinates(t *testing.T) {
	r := NewTableResolver(DefaultTable())

	coords := &model.Coordinates{Latitude: 39.08, Longitude: -84.51}
	if got, want := r.Resolve("Covington", coords), r.Resolve("Covington", nil); got != want {
		t.Errorf("coordinates changed table resolution: %+v vs %+v", got, want)
	}
}

func TestCoordinateResolver_Boxes(t *testing.T) {
	r := NewCoordinateResolver()

	tests := []struct {
		name       string
		coords     model.Coordinates
		wantCounty string
		wantCode   string
	}{
		{"louisville", model.Coordinates{Latitude: 38.25, Longitude: -85.76}, "JEFFERSON COUNTY", "56-00000"},
		{"lexington", model.Coordinates{Latitude: 38.04, Longitude: -84.5}, "FAYETTE COUNTY", "34-00000"},
		{"covington", model.Coordinates{Latitude: 39.08, Longitude: -84.51}, "KENTON COUNTY", "59-00000"},
		{"ocean", model.Coordinates{Latitude: 0, Longitude: 0}, "UNKNOWN COUNTY", CoordinateFallbackCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve("", &tt.coords)
			if got.County != tt.wantCounty || got.Code != tt.wantCode {
				t.Errorf("Resolve = %+v, want {%s %s}", got, tt.wantCounty, tt.wantCode)
			}
		})
	}
}

func TestCoordinateResolver_CityFallbackWithoutCoordinates(t *testing.T) {
	r := NewCoordinateResolver()

	got := r.Resolve("Louisville", nil)
	if got.County != "JEFFERSON COUNTY" || got.Code != "56-00000" {
		t.Errorf("Resolve(Louisville, nil) = %+v", got)
	}

	unknown := r.Resolve("Nowhere", nil)
	if unknown.Code != CoordinateFallbackCode || unknown.County != "UNKNOWN COUNTY" {
		t.Errorf("Resolve(Nowhere, nil) = %+v", unknown)
	}
}

func TestNew_StrategySelection(t *testing.T) {
	if r, err := New(model.JurisdictionConfig{Strategy: "table"}); err != nil {
		t.Fatalf("table strategy: %v", err)
	} else if _, ok := r.(*TableResolver); !ok {
		t.Fatalf("table strategy produced %T", r)
	}

	if r, err := New(model.JurisdictionConfig{Strategy: "coordinate"}); err != nil {
		t.Fatalf("coordinate strategy: %v", err)
	} else if _, ok := r.(*CoordinateResolver); !ok {
		t.Fatalf("coordinate strategy produced %T", r)
	}

	if _, err := New(model.JurisdictionConfig{Strategy: "nearest"}); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	content := `
COVINGTON:
  code: "5"
  county: KENTON COUNTY
MAYFIELD:
  code: "301"
  county: GRAVES COUNTY
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if got := table["MAYFIELD"]; got.Code != "301" || got.County != "GRAVES COUNTY" {
		t.Errorf("MAYFIELD = %+v", got)
	}

	r := NewTableResolver(table)
	if got := r.Resolve("mayfield", nil); got.Code != "301" {
		t.Errorf("Resolve(mayfield) = %+v", got)
	}
}

func TestLoadTable_RejectsIncompleteEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("NOWHERE:\n  code: \"1\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Fatal("expected error for entry without county")
	}
}
