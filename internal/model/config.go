package model

import "time"

// Config is the complete runtime configuration for one premalloc
// process. Built by the CLI from defaults, config file and flags; the
// pipeline and server treat it as read-only.
type Config struct {
	Geocoder     GeocoderConfig
	Jurisdiction JurisdictionConfig
	Cache        CacheConfig
	Limits       LimitsConfig
	Report       ReportConfig
	LLM          LLMConfig
	Server       ServerConfig
	Output       OutputConfig
}

// GeocoderConfig configures the Census geocoder client.
type GeocoderConfig struct {
	BaseURL      string        // onelineaddress endpoint
	Benchmark    string        // Census benchmark vintage
	Timeout      time.Duration // per-call timeout
	UserAgent    string
	MaxBodyBytes int64
}

// JurisdictionConfig selects and parameterizes a resolver strategy.
type JurisdictionConfig struct {
	Strategy  string // "table" or "coordinate"
	TablePath string // optional YAML municipality table; empty uses the built-in table
}

// CacheConfig configures geocode response caching.
type CacheConfig struct {
	Enabled bool
	Dir     string // disk cache directory; empty disables the disk layer
	TTL     time.Duration
}

// LimitsConfig bounds a pipeline run.
type LimitsConfig struct {
	MaxRecords        int           // record ceiling per run; 0 means unlimited
	CallDelay         time.Duration // pause between sequential geocoder calls
	RequestsPerSecond float64
	Burst             int
	MaxUploadBytes    int64 // upload endpoint body cap
}

// ReportConfig configures report assembly.
type ReportConfig struct {
	CategoryStrategy string // "life" (default) or "split"
}

// LLMConfig configures the optional exception narrative. Disabled when
// Provider is empty.
type LLMConfig struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string
	Port int
}

// OutputConfig controls operator-facing output.
type OutputConfig struct {
	Verbose bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Geocoder: GeocoderConfig{
			BaseURL:      "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress",
			Benchmark:    "2020",
			Timeout:      10 * time.Second,
			UserAgent:    "premalloc/0.1",
			MaxBodyBytes: 1 << 20,
		},
		Jurisdiction: JurisdictionConfig{
			Strategy: "table",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Limits: LimitsConfig{
			MaxRecords:        500,
			CallDelay:         200 * time.Millisecond,
			RequestsPerSecond: 5,
			Burst:             1,
			MaxUploadBytes:    10 << 20,
		},
		Report: ReportConfig{
			CategoryStrategy: "life",
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3001,
		},
		Output: OutputConfig{},
	}
}
