package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Server captures process-level configuration. Values come from an optional
// YAML file overlaid with environment variables so main stays lean.
type Server struct {
	Addr           string
	Environment    string
	JWTSigningKey  string
	TokenTTL       time.Duration
	AdminTokenHash string
	AuditDBPath    string
	RateLimitRPS   float64
	RateLimitBurst int
}

// fileServer is the on-disk shape. Durations are strings ("15m") so the file
// stays hand-editable.
type fileServer struct {
	Addr           string  `yaml:"addr"`
	Environment    string  `yaml:"environment"`
	JWTSigningKey  string  `yaml:"jwtSigningKey"`
	TokenTTL       string  `yaml:"tokenTTL"`
	AdminTokenHash string  `yaml:"adminTokenHash"`
	AuditDBPath    string  `yaml:"auditDBPath"`
	RateLimitRPS   float64 `yaml:"rateLimitRPS"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`
}

func defaults() Server {
	return Server{
		Addr:           ":8080",
		Environment:    "dev",
		TokenTTL:       15 * time.Minute,
		RateLimitRPS:   20,
		RateLimitBurst: 40,
	}
}

// Load builds a Server config. A config file path may be supplied explicitly;
// otherwise well-known locations are probed. Environment variables win over
// file values.
func Load(configPath string) Server {
	cfg := defaults()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates, "configs/config.yaml", "config.yaml")
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed fileServer
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merge(&cfg, parsed)
		break
	}

	applyEnvOverrides(&cfg)
	return cfg
}

func merge(dst *Server, src fileServer) {
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	if src.Environment != "" {
		dst.Environment = src.Environment
	}
	if src.JWTSigningKey != "" {
		dst.JWTSigningKey = src.JWTSigningKey
	}
	if src.TokenTTL != "" {
		if d, err := time.ParseDuration(src.TokenTTL); err == nil && d > 0 {
			dst.TokenTTL = d
		}
	}
	if src.AdminTokenHash != "" {
		dst.AdminTokenHash = src.AdminTokenHash
	}
	if src.AuditDBPath != "" {
		dst.AuditDBPath = src.AuditDBPath
	}
	if src.RateLimitRPS > 0 {
		dst.RateLimitRPS = src.RateLimitRPS
	}
	if src.RateLimitBurst > 0 {
		dst.RateLimitBurst = src.RateLimitBurst
	}
}

func applyEnvOverrides(cfg *Server) {
	if v := os.Getenv("ALLOGRAFT_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ALLOGRAFT_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("JWT_SIGNING_KEY"); v != "" {
		cfg.JWTSigningKey = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("ADMIN_TOKEN_HASH"); v != "" {
		cfg.AdminTokenHash = v
	}
	if v := os.Getenv("AUDIT_DB_PATH"); v != "" {
		cfg.AuditDBPath = v
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitBurst = n
		}
	}
	if cfg.JWTSigningKey == "" {
		// Development default - must be overridden in any shared deployment.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
}
