package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/farxc/painel-seguros/internal/env"
	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/farxc/painel-seguros/internal/painel/downloader"
	"github.com/farxc/painel-seguros/internal/painel/types"
)

const exportBaseURL = "https://docs.google.com/spreadsheets/d/"

type Config struct {
	Addr            string
	Source          types.Source
	FetchTimeout    time.Duration
	CacheTTL        time.Duration
	RequiredColumns []string
	LogLevel        logger.LogLevel
	DB              DBConfig
}

type DBConfig struct {
	Driver       string
	Addr         string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

// Enabled reports whether a load history database is configured.
func (c DBConfig) Enabled() bool {
	return c.Addr != ""
}

/*
Load reads the configuration from the environment. The returned Config is
always filled in; when no spreadsheet source is set the error is
types.ErrConfigMissing so callers may still start and report it per request.
*/
func Load() (Config, error) {
	cfg := Config{
		Addr:            env.GetString("ADDR", ":8080"),
		FetchTimeout:    env.GetDuration("FETCH_TIMEOUT", downloader.DefaultTimeout),
		CacheTTL:        env.GetDuration("CACHE_TTL", 60*time.Second),
		RequiredColumns: env.GetList("REQUIRED_COLUMNS"),
		LogLevel:        logger.LevelInfo,
		DB: DBConfig{
			Driver:       env.GetString("DB_DRIVER", "postgres"),
			Addr:         env.GetString("DB_ADDR", ""),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 25),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
	}

	if raw := env.GetString("LOG_LEVEL", ""); raw != "" {
		level, err := logger.ParseLevel(raw)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}

	src, err := sourceFromEnv()
	if err != nil {
		return cfg, err
	}
	cfg.Source = src
	return cfg, nil
}

func sourceFromEnv() (types.Source, error) {
	sheetURL := strings.TrimSpace(env.GetString("SHEET_URL", ""))
	sheetID := strings.TrimSpace(env.GetString("SHEET_ID", ""))
	if sheetURL == "" && sheetID == "" {
		return types.Source{}, types.ErrConfigMissing
	}

	tabs, err := ParseTabs(env.GetList("SHEET_TABS"))
	if err != nil {
		return types.Source{}, err
	}

	src := types.Source{URL: sheetURL, Format: types.FormatWorkbook}
	if len(tabs) > 0 {
		src.Format = types.FormatCSVTabs
		src.Tabs = tabs
	}
	if src.URL == "" {
		src.URL = ExportURL(sheetID, src.Format)
	}

	if _, err := url.ParseRequestURI(src.URL); err != nil {
		return types.Source{}, fmt.Errorf("invalid SHEET_URL %q: %w", src.URL, err)
	}
	return src, nil
}

// ExportURL builds the export URL of a spreadsheet id: the xlsx workbook, or
// the CSV endpoint that takes a gid per tab.
func ExportURL(sheetID string, format types.Format) string {
	kind := "xlsx"
	if format == types.FormatCSVTabs {
		kind = "csv"
	}
	return exportBaseURL + url.PathEscape(sheetID) + "/export?format=" + kind
}

// ParseTabs parses "name:gid" entries. The gid is whatever follows the last
// colon, so tab names may contain colons.
func ParseTabs(entries []string) ([]types.Tab, error) {
	tabs := make([]types.Tab, 0, len(entries))
	for _, entry := range entries {
		i := strings.LastIndex(entry, ":")
		if i <= 0 || i == len(entry)-1 {
			return nil, fmt.Errorf("invalid SHEET_TABS entry %q (want name:gid)", entry)
		}
		name := strings.TrimSpace(entry[:i])
		gid := strings.TrimSpace(entry[i+1:])
		if name == "" || gid == "" {
			return nil, fmt.Errorf("invalid SHEET_TABS entry %q (want name:gid)", entry)
		}
		tabs = append(tabs, types.Tab{Name: name, ID: gid})
	}
	return tabs, nil
}
