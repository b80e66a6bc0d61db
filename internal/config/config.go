package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/pdfgen/internal/pdfdoc"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	// Auth
	APIKey string

	// CORS
	CORSOrigins []string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Page layout
	LinesPerPage int
	WrapColumns  int
	FontName     string
	FontSize     float64
	LineHeight   float64
	MarginLeft   float64
	MarginTop    float64
	PageWidth    float64
	PageHeight   float64
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set take precedence.
func Load() Config {
	_ = godotenv.Load()

	def := pdfdoc.DefaultLayout()
	cfg := Config{
		Port:     envOr("PORT", "8090"),
		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		APIKey: os.Getenv("PDFGEN_API_KEY"),

		CORSOrigins: envList("CORS_ORIGINS"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		LinesPerPage: envInt("LINES_PER_PAGE", pdfdoc.DefaultLinesPerPage),
		WrapColumns:  envInt("WRAP_COLUMNS", 90),
		FontName:     envOr("FONT_NAME", pdfdoc.DefaultFont().BaseFont),
		FontSize:     envFloat("FONT_SIZE", def.FontSize),
		LineHeight:   envFloat("LINE_HEIGHT", def.LineHeight),
		MarginLeft:   envFloat("MARGIN_LEFT", def.MarginLeft),
		MarginTop:    envFloat("MARGIN_TOP", def.MarginTop),
		PageWidth:    envFloat("PAGE_WIDTH", def.PageWidth),
		PageHeight:   envFloat("PAGE_HEIGHT", def.PageHeight),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.LinesPerPage <= 0 {
		cfg.LinesPerPage = pdfdoc.DefaultLinesPerPage
	}
	if cfg.WrapColumns < 0 {
		cfg.WrapColumns = 0
	}

	return cfg
}

// Validate checks that the layout settings can produce a document.
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT %q is not a number", c.Port)
	}
	doc := pdfdoc.New(c.Font(), c.Layout())
	doc.AddPage(nil)
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("layout settings: %w", err)
	}
	if c.MarginTop > c.PageHeight || c.MarginLeft > c.PageWidth {
		return fmt.Errorf("margins %gx%g fall outside the %gx%g page", c.MarginLeft, c.MarginTop, c.PageWidth, c.PageHeight)
	}
	return nil
}

// Layout returns the configured page geometry.
func (c Config) Layout() pdfdoc.Layout {
	return pdfdoc.Layout{
		PageWidth:  c.PageWidth,
		PageHeight: c.PageHeight,
		MarginLeft: c.MarginLeft,
		MarginTop:  c.MarginTop,
		FontSize:   c.FontSize,
		LineHeight: c.LineHeight,
	}
}

// Font returns the configured base font under the default resource key.
func (c Config) Font() pdfdoc.Font {
	f := pdfdoc.DefaultFont()
	f.BaseFont = c.FontName
	return f
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
