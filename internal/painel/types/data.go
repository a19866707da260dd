package types

import (
	"sort"
	"strings"
	"time"
)

// Well-known column names, already normalised (trimmed, lower-cased).
const (
	ColDay          = "dia"
	ColInsured      = "segurado"
	ColPolicy       = "apólice"
	ColNetPremium   = "prêmio líquido"
	ColInsurer      = "seguradora"
	ColItem         = "item"
	ColTaxID        = "cpf/cnpj"
	ColDeductible   = "franquia"
	ColCollaborator = "colaborador"
	ColStatus       = "status"
)

// Canonical status labels. Anything else is passed through as cleaned text.
const (
	StatusPending = "pendente"
	StatusRenewed = "renovado"
)

// NoRestriction is the selector value meaning "do not filter".
const NoRestriction = "todos"

// SearchColumns are the identifier columns covered by the free-text query.
var SearchColumns = []string{ColInsured, ColPolicy, ColTaxID}

type Format int

const (
	FormatWorkbook Format = iota
	FormatCSVTabs
)

var FormatNames = map[Format]string{
	FormatWorkbook: "workbook",
	FormatCSVTabs:  "csv-tabs",
}

func (f Format) String() string {
	return FormatNames[f]
}

// Tab is one named sheet of a csv-tabs source.
type Tab struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Source describes where a SheetSet is loaded from.
type Source struct {
	URL    string
	Format Format
	Tabs   []Tab
}

// Key identifies a source for caching: URL plus the sorted tab-id set.
func (s Source) Key() string {
	ids := make([]string, 0, len(s.Tabs))
	for _, t := range s.Tabs {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return s.URL + "|" + strings.Join(ids, ",")
}

// TabIDs returns the tab ids in configured order.
func (s Source) TabIDs() []string {
	ids := make([]string, 0, len(s.Tabs))
	for _, t := range s.Tabs {
		ids = append(ids, t.ID)
	}
	return ids
}

type Record struct {
	Fields map[string]string `json:"fields"`
	Status string            `json:"status_normalizado"`
}

// Get returns the value of column col, or "" when absent.
func (r Record) Get(col string) string {
	return r.Fields[col]
}

type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Records []Record `json:"records"`

	// folded column name -> actual column name
	lookup map[string]string
}

func NewTable(name string, columns []string, records []Record) *Table {
	t := &Table{Name: name, Columns: columns, Records: records}
	t.index()
	return t
}

func (t *Table) index() {
	t.lookup = make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		key := FoldColumn(c)
		if _, dup := t.lookup[key]; !dup {
			t.lookup[key] = c
		}
	}
}

// Column resolves a well-known column name to the table's actual column.
// An exact match wins; otherwise matching ignores accents.
func (t *Table) Column(name string) (string, bool) {
	for _, c := range t.Columns {
		if c == name {
			return c, true
		}
	}
	if t.lookup == nil {
		t.index()
	}
	c, ok := t.lookup[FoldColumn(name)]
	return c, ok
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

func (t *Table) Len() int {
	return len(t.Records)
}

// WithRecords returns a view of t holding only the given records.
func (t *Table) WithRecords(records []Record) *Table {
	return &Table{Name: t.Name, Columns: t.Columns, Records: records, lookup: t.lookup}
}

type SheetSet struct {
	Tables    []*Table  `json:"tables"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (s *SheetSet) Names() []string {
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	return names
}

func (s *SheetSet) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Criteria holds the optional filter predicates. Empty values and
// NoRestriction mean "no restriction".
type Criteria struct {
	Collaborator string `json:"collaborator,omitempty"`
	Status       string `json:"status,omitempty"`
	Query        string `json:"query,omitempty"`
}

func IsRestricted(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, NoRestriction)
}

type DayTotal struct {
	Day   time.Time `json:"day"`
	Total float64   `json:"total"`
}

type PremiumTotals struct {
	Available bool    `json:"available"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
	Parsed    int     `json:"parsed"`
	Skipped   int     `json:"skipped"`
}

type Summary struct {
	Total        int            `json:"total"`
	StatusCounts map[string]int `json:"status_counts"`
	Pending      int            `json:"pending"`
	Renewed      int            `json:"renewed"`
	Premium      PremiumTotals  `json:"premium"`
	Daily        []DayTotal     `json:"daily,omitempty"`
}

type Options struct {
	Collaborators []string `json:"collaborators"`
	Statuses      []string `json:"statuses"`
}
