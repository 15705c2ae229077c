// SPDX-License-Identifier: AGPL-3.0-only
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/argon2"
)

const (
	DefaultAPIBase        = "http://127.0.0.1:8000"
	DefaultListenAddr     = ":8080"
	DefaultRequestTimeout = 10 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
	DefaultPageSize       = 20
	DefaultTokenFile      = "./data/auth_token"
)

type AppConfig struct {
	APIBase        string
	ListenAddr     string
	FallbackAvatar string
	RequestTimeout time.Duration
	SyncInterval   time.Duration
	PageSize       int
	TokenFile      string
	EncryptionKey  []byte
	AdminToken     string
	LogLevel       string
	LogJSON        bool
	DevMode        bool
}

var keySalt = []byte("postview-token-store")

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment values
// win over it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*AppConfig, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &AppConfig{
		APIBase:        strings.TrimRight(env("POSTVIEW_API_BASE", DefaultAPIBase), "/"),
		ListenAddr:     env("POSTVIEW_LISTEN", DefaultListenAddr),
		FallbackAvatar: env("POSTVIEW_FALLBACK_AVATAR", ""),
		TokenFile:      env("POSTVIEW_TOKEN_FILE", DefaultTokenFile),
		LogLevel:       strings.ToLower(env("POSTVIEW_LOG_LEVEL", "info")),
		AdminToken:     env("POSTVIEW_ADMIN_TOKEN", ""),
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration(env("POSTVIEW_TIMEOUT", ""), DefaultRequestTimeout); err != nil {
		return nil, fmt.Errorf("POSTVIEW_TIMEOUT: %w", err)
	}
	if cfg.SyncInterval, err = parseDuration(env("POSTVIEW_SYNC_INTERVAL", ""), DefaultSyncInterval); err != nil {
		return nil, fmt.Errorf("POSTVIEW_SYNC_INTERVAL: %w", err)
	}

	cfg.PageSize = DefaultPageSize
	if v := env("POSTVIEW_PAGE_SIZE", ""); v != "" {
		cfg.PageSize, err = strconv.Atoi(v)
		if err != nil || cfg.PageSize <= 0 {
			return nil, fmt.Errorf("POSTVIEW_PAGE_SIZE must be a positive integer, got %q", v)
		}
	}

	if cfg.LogJSON, err = parseBool(env("POSTVIEW_LOG_JSON", "")); err != nil {
		return nil, fmt.Errorf("POSTVIEW_LOG_JSON: %w", err)
	}
	if cfg.DevMode, err = parseBool(env("POSTVIEW_DEV", "")); err != nil {
		return nil, fmt.Errorf("POSTVIEW_DEV: %w", err)
	}

	if secret := env("POSTVIEW_ENCRYPTION_KEY", ""); secret != "" {
		cfg.EncryptionKey = DeriveKey(secret)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("POSTVIEW_LOG_LEVEL %q not recognized", cfg.LogLevel)
	}

	return cfg, nil
}

// DeriveKey stretches a passphrase into the 32-byte key used for the token
// store.
func DeriveKey(secret string) []byte {
	return argon2.IDKey([]byte(secret), keySalt, 1, 64*1024, 4, 32)
}

func parseDuration(v string, fallback time.Duration) (time.Duration, error) {
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
