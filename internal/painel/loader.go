package painel

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/farxc/painel-seguros/internal/painel/converter"
	"github.com/farxc/painel-seguros/internal/painel/files"
	"github.com/farxc/painel-seguros/internal/painel/types"
	"golang.org/x/sync/errgroup"
)

var errNoUsableTabs = errors.New("no usable tabs")

// Fetcher downloads one export.
type Fetcher interface {
	FetchData(ctx context.Context, url string) ([]byte, error)
}

// Loader turns a Source into a SheetSet. It never returns a partial set.
type Loader struct {
	fetcher   Fetcher
	appLogger *logger.Logger
	now       func() time.Time
}

func NewLoader(fetcher Fetcher, appLogger *logger.Logger) *Loader {
	return &Loader{fetcher: fetcher, appLogger: appLogger, now: time.Now}
}

func (l *Loader) Load(ctx context.Context, src types.Source) (*types.SheetSet, error) {
	const component = "Loader"

	if src.URL == "" {
		return nil, types.ErrConfigMissing
	}

	l.appLogger.Info(component, "Loading spreadsheet: format=%s url=%s tabs=%d", src.Format, src.URL, len(src.Tabs))

	var (
		tables []*types.Table
		err    error
	)
	switch src.Format {
	case types.FormatCSVTabs:
		tables, err = l.loadCSVTabs(ctx, src)
	default:
		tables, err = l.loadWorkbook(ctx, src)
	}
	if err != nil {
		l.appLogger.Error(component, "Spreadsheet load failed: url=%s err=%v", src.URL, err)
		return nil, err
	}

	if len(tables) == 0 {
		return nil, &types.LoadError{Source: src.URL, Cause: errNoUsableTabs}
	}

	l.appLogger.Info(component, "Spreadsheet loaded: tabs=%d", len(tables))
	return &types.SheetSet{Tables: tables, FetchedAt: l.now()}, nil
}

func (l *Loader) loadWorkbook(ctx context.Context, src types.Source) ([]*types.Table, error) {
	data, err := l.fetcher.FetchData(ctx, src.URL)
	if err != nil {
		return nil, &types.LoadError{Source: src.URL, Cause: err}
	}

	frames, err := files.DecodeWorkbook(data, l.appLogger)
	if err != nil {
		return nil, &types.LoadError{Source: src.URL, Cause: err}
	}

	tables := make([]*types.Table, 0, len(frames))
	for _, f := range frames {
		tables = append(tables, converter.DfToTable(f.Name, f.Frame))
	}
	return tables, nil
}

// loadCSVTabs fetches every configured tab concurrently. Tabs keep their
// configured order; tabs without a header are skipped.
func (l *Loader) loadCSVTabs(ctx context.Context, src types.Source) ([]*types.Table, error) {
	const component = "Loader-CSV"

	if len(src.Tabs) == 0 {
		return nil, &types.LoadError{Source: src.URL, Cause: errors.New("no tabs configured")}
	}

	results := make([]*types.Table, len(src.Tabs))
	g, gctx := errgroup.WithContext(ctx)

	for i, tab := range src.Tabs {
		g.Go(func() error {
			tabURL, err := TabURL(src.URL, tab.ID)
			if err != nil {
				return &types.LoadError{Source: src.URL, Tab: tab.Name, Cause: err}
			}

			data, err := l.fetcher.FetchData(gctx, tabURL)
			if err != nil {
				return &types.LoadError{Source: src.URL, Tab: tab.Name, Cause: err}
			}

			df, err := files.DecodeCSV(data)
			if errors.Is(err, files.ErrNoHeader) {
				l.appLogger.Warn(component, "Skipping tab without header: tab=%s", tab.Name)
				return nil
			}
			if err != nil {
				return &types.LoadError{Source: src.URL, Tab: tab.Name, Cause: err}
			}

			results[i] = converter.DfToTable(tab.Name, df)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tables := make([]*types.Table, 0, len(results))
	for _, t := range results {
		if t != nil {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

// TabURL sets the gid query parameter of a CSV export URL.
func TabURL(base, gid string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid export URL: %w", err)
	}
	q := u.Query()
	q.Set("gid", gid)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
