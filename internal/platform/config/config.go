package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"portfolio_chart/internal/feature/pricechart/usecase"
)

// Canvas describes one chart element of the served page.
type Canvas struct {
	ID         string  `yaml:"id"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Redis struct {
		Host      string        `yaml:"host"`
		Port      string        `yaml:"port"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db"`
		Namespace string        `yaml:"namespace"`
		TTL       time.Duration `yaml:"ttl"` // 0 expires frames at midnight
	} `yaml:"redis"`
	Canvases []Canvas `yaml:"canvases"`
	Chart    struct {
		Days       int     `yaml:"days"`
		BasePrice  float64 `yaml:"base_price"`
		LowerBound float64 `yaml:"lower_bound"`
		UpperBound float64 `yaml:"upper_bound"`
		Seed       uint64  `yaml:"seed"` // 0 uses the global random source
	} `yaml:"chart"`
	Theme struct {
		Accent   string `yaml:"accent"`
		Negative string `yaml:"negative"`
	} `yaml:"theme"`
	Raster struct {
		Limit    int           `yaml:"limit"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"raster"`
	Schedule struct {
		RebuildCron string `yaml:"rebuild_cron"`
	} `yaml:"schedule"`
	Contact struct {
		Email string `yaml:"email"`
	} `yaml:"contact"`
}

// Load reads .env (if present) and the YAML file at path, then applies
// environment variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("CHART_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Chart.Seed = seed
		}
	}
	if v := os.Getenv("CRON_REBUILD"); v != "" {
		c.Schedule.RebuildCron = v
	}
	if v := os.Getenv("CONTACT_EMAIL"); v != "" {
		c.Contact.Email = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if c.Redis.Namespace == "" {
		c.Redis.Namespace = "frames"
	}
	if len(c.Canvases) == 0 {
		c.Canvases = []Canvas{{ID: "price-chart-canvas", Width: 400, Height: 300, PixelRatio: 1}}
	}
	for i := range c.Canvases {
		if c.Canvases[i].PixelRatio == 0 {
			c.Canvases[i].PixelRatio = 1
		}
	}
	if c.Chart.Days == 0 {
		c.Chart.Days = 60
	}
	if c.Chart.BasePrice == 0 {
		c.Chart.BasePrice = 200
	}
	if c.Chart.LowerBound == 0 && c.Chart.UpperBound == 0 {
		c.Chart.LowerBound, c.Chart.UpperBound = 150, 300
	}
	if c.Theme.Accent == "" {
		c.Theme.Accent = "#22c55e"
	}
	if c.Theme.Negative == "" {
		c.Theme.Negative = "#ef4444"
	}
	if c.Raster.Limit == 0 {
		c.Raster.Limit = 120
	}
	if c.Raster.Interval == 0 {
		c.Raster.Interval = time.Minute
	}
	if c.Schedule.RebuildCron == "" {
		c.Schedule.RebuildCron = "0 0 0 * * *"
	}
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// RedisAddr returns host:port, defaulting the port to 6379.
func (c *Config) RedisAddr() string {
	port := c.Redis.Port
	if port == "" {
		port = "6379"
	}
	return c.Redis.Host + ":" + port
}

// Validate checks ranges and required fields.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric: %q", c.Server.Port)
	}
	seen := make(map[string]struct{}, len(c.Canvases))
	for _, cv := range c.Canvases {
		if cv.ID == "" {
			return fmt.Errorf("canvases: id is required")
		}
		if _, dup := seen[cv.ID]; dup {
			return fmt.Errorf("canvases: duplicate id %q", cv.ID)
		}
		seen[cv.ID] = struct{}{}
		// same bounds the board applies to render requests
		if !(cv.Width > 0 && cv.Width <= usecase.MaxDimension) || !(cv.Height > 0 && cv.Height <= usecase.MaxDimension) {
			return fmt.Errorf("canvases.%s: width and height must be in (0, %g]", cv.ID, usecase.MaxDimension)
		}
		if !(cv.PixelRatio > 0 && cv.PixelRatio <= usecase.MaxPixelRatio) {
			return fmt.Errorf("canvases.%s: pixel_ratio must be in (0, %g]", cv.ID, usecase.MaxPixelRatio)
		}
	}
	if c.Chart.Days <= 0 {
		return fmt.Errorf("chart.days must be positive")
	}
	if c.Chart.LowerBound > c.Chart.UpperBound {
		return fmt.Errorf("chart.lower_bound must not exceed chart.upper_bound")
	}
	if c.Raster.Limit <= 0 || c.Raster.Interval <= 0 {
		return fmt.Errorf("raster.limit and raster.interval must be positive")
	}
	if c.Contact.Email == "" {
		return fmt.Errorf("contact.email is required")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
