package painel

import (
	"context"
	"strings"
	"time"

	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/farxc/painel-seguros/internal/painel/query"
	"github.com/farxc/painel-seguros/internal/painel/summary"
	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/store"
	"github.com/schollz/closestmatch"
)

type ServiceConfig struct {
	Source          types.Source
	RequiredColumns []string
}

// TabInfo describes one loaded tab.
type TabInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

type Sheets struct {
	Tabs      []TabInfo `json:"tabs"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Report is the filtered view of one tab plus its aggregates. Options are
// computed over the unfiltered tab.
type Report struct {
	Tab       string         `json:"tab"`
	FetchedAt time.Time      `json:"fetched_at"`
	Criteria  types.Criteria `json:"criteria"`
	Columns   []string       `json:"columns"`
	Records   []types.Record `json:"records"`
	Summary   types.Summary  `json:"summary"`
	Options   types.Options  `json:"options"`
}

// Service ties the loader, the cache and the load history together.
type Service struct {
	cfg       ServiceConfig
	loader    *Loader
	cache     *Cache
	storage   *store.Storage
	appLogger *logger.Logger
}

// NewService builds a Service. storage may be nil, in which case loads are
// not recorded.
func NewService(cfg ServiceConfig, loader *Loader, cache *Cache, storage *store.Storage, appLogger *logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		loader:    loader,
		cache:     cache,
		storage:   storage,
		appLogger: appLogger,
	}
}

func (s *Service) Source() types.Source {
	return s.cfg.Source
}

// SheetSet returns the cached SheetSet, loading it on a miss.
func (s *Service) SheetSet(ctx context.Context) (*types.SheetSet, error) {
	return s.get(ctx, store.TriggerTypeScheduled)
}

func (s *Service) get(ctx context.Context, trigger string) (*types.SheetSet, error) {
	if s.cfg.Source.URL == "" {
		return nil, types.ErrConfigMissing
	}
	return s.cache.GetOrFetch(ctx, s.cfg.Source.Key(), func(ctx context.Context) (*types.SheetSet, error) {
		return s.load(ctx, trigger)
	})
}

// Sheets lists the loaded tabs in source order.
func (s *Service) Sheets(ctx context.Context) (*Sheets, error) {
	set, err := s.SheetSet(ctx)
	if err != nil {
		return nil, err
	}

	out := &Sheets{Tabs: make([]TabInfo, 0, len(set.Tables)), FetchedAt: set.FetchedAt}
	for _, t := range set.Tables {
		out.Tabs = append(out.Tabs, TabInfo{Name: t.Name, Columns: t.Columns, Rows: t.Len()})
	}
	return out, nil
}

// Reload drops the cached entry and loads the source again.
func (s *Service) Reload(ctx context.Context) (*Sheets, error) {
	const component = "Service"

	if s.cfg.Source.URL == "" {
		return nil, types.ErrConfigMissing
	}
	s.appLogger.Info(component, "Manual reload requested: url=%s", s.cfg.Source.URL)
	s.cache.Invalidate(s.cfg.Source.Key())

	if _, err := s.get(ctx, store.TriggerTypeManual); err != nil {
		return nil, err
	}
	return s.Sheets(ctx)
}

// Report selects tab, checks mandatory columns, filters and summarises.
func (s *Service) Report(ctx context.Context, tab string, criteria types.Criteria) (*Report, error) {
	set, err := s.SheetSet(ctx)
	if err != nil {
		return nil, err
	}

	table, err := s.findTable(set, tab)
	if err != nil {
		return nil, err
	}

	for _, col := range s.cfg.RequiredColumns {
		name := types.NormalizeColumn(col)
		if name != "" && !table.HasColumn(name) {
			return nil, &types.SchemaError{Tab: table.Name, Column: name}
		}
	}

	filtered := query.Filter(table, criteria)
	return &Report{
		Tab:       table.Name,
		FetchedAt: set.FetchedAt,
		Criteria:  criteria,
		Columns:   table.Columns,
		Records:   filtered.Records,
		Summary:   summary.Summarize(filtered),
		Options:   query.Options(table),
	}, nil
}

func (s *Service) findTable(set *types.SheetSet, tab string) (*types.Table, error) {
	if t, ok := set.Table(tab); ok {
		return t, nil
	}

	names := set.Names()
	trimmed := strings.TrimSpace(tab)
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), trimmed) {
			t, _ := set.Table(name)
			return t, nil
		}
	}

	notFound := &types.TabNotFoundError{Tab: tab}
	if len(names) > 0 && trimmed != "" {
		cm := closestmatch.New(names, []int{2, 3})
		notFound.Suggestion = cm.Closest(trimmed)
	}
	return nil, notFound
}

// History returns the most recent loads, or an empty list when no store is
// configured.
func (s *Service) History(ctx context.Context, limit int) ([]store.LoadHistory, error) {
	if s.storage == nil {
		return []store.LoadHistory{}, nil
	}
	return s.storage.LoadHistory.GetLatest(ctx, limit)
}

func (s *Service) load(ctx context.Context, trigger string) (*types.SheetSet, error) {
	const component = "Service-Load"
	src := s.cfg.Source

	history := &store.LoadHistory{
		Source:      src.URL,
		Tabs:        strings.Join(src.TabIDs(), ","),
		TriggerType: trigger,
		Status:      store.StatusInProgress,
		ProcessedAt: time.Now().UTC(),
	}
	s.recordStart(ctx, history)

	start := time.Now()
	set, err := s.loader.Load(ctx, src)
	history.DurationMs = time.Since(start).Milliseconds()

	if err != nil {
		history.Status = store.StatusFailure
		history.ErrorMessage = err.Error()
		s.recordResult(ctx, history)
		return nil, err
	}

	history.Status = store.StatusSuccess
	history.TabCount = len(set.Tables)
	for _, t := range set.Tables {
		history.RowCount += t.Len()
	}
	s.recordResult(ctx, history)

	s.appLogger.Info(component, "Load finished: trigger=%s tabs=%d rows=%d duration=%dms", trigger, history.TabCount, history.RowCount, history.DurationMs)
	return set, nil
}

// History failures are logged and never fail the load itself.
func (s *Service) recordStart(ctx context.Context, history *store.LoadHistory) {
	const component = "Service-History"
	if s.storage == nil {
		return
	}
	if err := s.storage.LoadHistory.InsertLoadHistory(ctx, history); err != nil {
		s.appLogger.Error(component, "Failed to create IN_PROGRESS record: err=%v", err)
	}
}

func (s *Service) recordResult(ctx context.Context, history *store.LoadHistory) {
	const component = "Service-History"
	if s.storage == nil || history.ID == 0 {
		return
	}
	if err := s.storage.LoadHistory.UpdateLoadResult(ctx, history); err != nil {
		s.appLogger.Error(component, "Failed to update final status: id=%d status=%s err=%v", history.ID, history.Status, err)
	}
}
