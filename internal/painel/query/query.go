package query

import (
	"strings"

	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/painel/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type predicate func(r types.Record) bool

/*
Filter returns the records of table matching every restricted criterion, in
their original order. A criterion whose column is absent from the table is
skipped rather than excluding every row.
*/
func Filter(table *types.Table, c types.Criteria) *types.Table {
	preds := buildPredicates(table, c)
	if len(preds) == 0 {
		return table.WithRecords(table.Records)
	}

	matching := make([]types.Record, 0, len(table.Records))
	for _, r := range table.Records {
		if matchesAll(r, preds) {
			matching = append(matching, r)
		}
	}
	return table.WithRecords(matching)
}

func matchesAll(r types.Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func buildPredicates(table *types.Table, c types.Criteria) []predicate {
	var preds []predicate

	if types.IsRestricted(c.Collaborator) {
		if col, ok := table.Column(types.ColCollaborator); ok {
			want := c.Collaborator
			preds = append(preds, func(r types.Record) bool {
				return r.Fields[col] == want
			})
		}
	}

	if types.IsRestricted(c.Status) && table.HasColumn(types.ColStatus) {
		want := utils.NormalizeStatus(c.Status)
		preds = append(preds, func(r types.Record) bool {
			return r.Status == want
		})
	}

	if q := strings.TrimSpace(c.Query); q != "" {
		var cols []string
		for _, name := range types.SearchColumns {
			if col, ok := table.Column(name); ok {
				cols = append(cols, col)
			}
		}
		if len(cols) > 0 {
			needle := fold(q)
			preds = append(preds, func(r types.Record) bool {
				for _, col := range cols {
					if strings.Contains(fold(r.Fields[col]), needle) {
						return true
					}
				}
				return false
			})
		}
	}

	return preds
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Options lists the distinct collaborators and normalised statuses of table,
// sorted in pt-BR collation order, for populating selectors.
func Options(table *types.Table) types.Options {
	opts := types.Options{Collaborators: []string{}, Statuses: []string{}}

	collabCol, hasCollab := table.Column(types.ColCollaborator)
	hasStatus := table.HasColumn(types.ColStatus)

	seenCollab := make(map[string]bool)
	seenStatus := make(map[string]bool)
	for _, r := range table.Records {
		if hasCollab {
			if v := r.Fields[collabCol]; strings.TrimSpace(v) != "" && !seenCollab[v] {
				seenCollab[v] = true
				opts.Collaborators = append(opts.Collaborators, v)
			}
		}
		if hasStatus && r.Status != "" && !seenStatus[r.Status] {
			seenStatus[r.Status] = true
			opts.Statuses = append(opts.Statuses, r.Status)
		}
	}

	SortLabels(opts.Collaborators)
	SortLabels(opts.Statuses)
	return opts
}

// SortLabels sorts labels in place in pt-BR collation order.
func SortLabels(labels []string) {
	collate.New(language.BrazilianPortuguese).SortStrings(labels)
}
