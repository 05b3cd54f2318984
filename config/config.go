package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/spf13/jwalterweatherman"
)

type Server struct {
	Addr    string
	DevMode bool
}

type API struct {
	BaseURL string
	Timeout time.Duration
}

type Live struct {
	Interval time.Duration
}

type RateLimit struct {
	RPS        float64
	Burst      int
	TrustProxy bool
}

type Stub struct {
	Addr string
	DB   string
}

type Config struct {
	Server    Server
	API       API
	Live      Live
	RateLimit RateLimit
	Stub      Stub
}

const logtag = "[config]"

// Load reads environment variables, optionally seeded from an env file.
// An explicit envFile must exist; the implicit .env is best effort.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
		log.INFO.Printf("%s using env from %s", logtag, envFile)
	} else if err := godotenv.Load(); err == nil {
		log.INFO.Printf("%s using env from .env", logtag)
	}

	cfg := &Config{
		Server: Server{
			Addr:    getenv("HTTP_ADDR", ":3000"),
			DevMode: getenv("DEV_MODE", "") == "1",
		},
		API: API{
			BaseURL: getenv("API_BASE_URL", "http://localhost:3333/"),
			Timeout: getDuration("API_TIMEOUT", 10*time.Second),
		},
		Live: Live{
			Interval: getDuration("LIVE_INTERVAL", 30*time.Second),
		},
		RateLimit: RateLimit{
			RPS:        getFloat("RATE_LIMIT_RPS", 1),
			Burst:      getInt("RATE_LIMIT_BURST", 5),
			TrustProxy: getenv("TRUST_PROXY", "") == "1",
		},
		Stub: Stub{
			Addr: getenv("STUB_ADDR", ":3333"),
			DB:   getenv("STUB_DB", "stub.db"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.DEBUG.Printf("%s loaded config: %+v", logtag, *cfg)
	return cfg, nil
}

// Validate checks the values that would otherwise fail late, on the first request.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API_BASE_URL %q: scheme must be http or https", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT must not be negative")
	}
	if c.Live.Interval <= 0 {
		return fmt.Errorf("LIVE_INTERVAL must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.WARN.Printf("%s invalid %s=%q, using %s", logtag, key, v, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.WARN.Printf("%s invalid %s=%q, using %d", logtag, key, v, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.WARN.Printf("%s invalid %s=%q, using %g", logtag, key, v, def)
		return def
	}
	return f
}
