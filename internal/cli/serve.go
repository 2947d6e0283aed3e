package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"premalloc/internal/model"
	"premalloc/internal/web"
)

var (
	serveHost       string
	servePort       int
	serveMaxRecords int
	serveDelay      time.Duration
	serveCacheDir   string
	serveStrategy   string
	serveCategories string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload HTTP server",
	Long: `Serve exposes the allocation pipeline over HTTP:

  POST /api/geocode  multipart CSV upload, returns the report set
  GET  /api/health   liveness check

Example:
  premalloc serve
  premalloc serve --port 8080 --max-records 20`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "listen host")
	serveCmd.Flags().IntVar(&servePort, "port", 3001, "listen port")
	serveCmd.Flags().IntVar(&serveMaxRecords, "max-records", 0, "record ceiling per upload (0 uses the configured default)")
	serveCmd.Flags().DurationVar(&serveDelay, "delay", 200*time.Millisecond, "pause between geocoder calls")
	serveCmd.Flags().StringVar(&serveCacheDir, "cache-dir", "", "persist geocode responses to this directory")
	serveCmd.Flags().StringVar(&serveStrategy, "strategy", "table", "jurisdiction strategy (table, coordinate)")
	serveCmd.Flags().StringVar(&serveCategories, "categories", "life", "category attribution strategy (life, split)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Server.Host = serveHost
	cfg.Server.Port = servePort
	if serveMaxRecords > 0 {
		cfg.Limits.MaxRecords = serveMaxRecords
	}
	cfg.Limits.CallDelay = serveDelay
	cfg.Cache.Dir = serveCacheDir
	cfg.Jurisdiction.Strategy = serveStrategy
	cfg.Report.CategoryStrategy = serveCategories

	server, err := web.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	return server.Start()
}
