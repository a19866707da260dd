package query

import (
	"reflect"
	"testing"

	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/painel/utils"
)

func newRecord(fields map[string]string) types.Record {
	return types.Record{Fields: fields, Status: utils.NormalizeStatus(fields[types.ColStatus])}
}

func fixture() *types.Table {
	cols := []string{types.ColInsured, "apolice", types.ColCollaborator, types.ColStatus}
	return types.NewTable("2026", cols, []types.Record{
		newRecord(map[string]string{types.ColInsured: "João Silva", "apolice": "123-A", types.ColCollaborator: "Ana", types.ColStatus: "Pendente"}),
		newRecord(map[string]string{types.ColInsured: "Maria Souza", "apolice": "999", types.ColCollaborator: "Ana", types.ColStatus: "Pendente"}),
		newRecord(map[string]string{types.ColInsured: "Pedro 123", "apolice": "555", types.ColCollaborator: "Bruno", types.ColStatus: "ok"}),
		newRecord(map[string]string{types.ColInsured: "Carla", "apolice": "1234", types.ColCollaborator: "Ana", types.ColStatus: "Renovado"}),
	})
}

func insured(t *types.Table) []string {
	out := []string{}
	for _, r := range t.Records {
		out = append(out, r.Fields[types.ColInsured])
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria types.Criteria
		want     []string
	}{
		{"no restriction", types.Criteria{}, []string{"João Silva", "Maria Souza", "Pedro 123", "Carla"}},
		{"sentinel means no restriction", types.Criteria{Collaborator: "Todos", Status: "todos"}, []string{"João Silva", "Maria Souza", "Pedro 123", "Carla"}},
		{"collaborator", types.Criteria{Collaborator: "Bruno"}, []string{"Pedro 123"}},
		{"collaborator is exact", types.Criteria{Collaborator: "ana"}, []string{}},
		{"status is normalised", types.Criteria{Status: "PENDENTE"}, []string{"João Silva", "Maria Souza"}},
		{"status ok maps to renovado", types.Criteria{Status: "renovado"}, []string{"Pedro 123", "Carla"}},
		{"query across columns", types.Criteria{Query: "123"}, []string{"João Silva", "Pedro 123", "Carla"}},
		{"query is case insensitive", types.Criteria{Query: "MARIA"}, []string{"Maria Souza"}},
		{"conjunction", types.Criteria{Collaborator: "Ana", Status: "pendente", Query: "123"}, []string{"João Silva"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insured(Filter(fixture(), tt.criteria))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%+v) = %v, want %v", tt.criteria, got, tt.want)
			}
		})
	}
}

func TestFilterIsSubsetOfEachCriterion(t *testing.T) {
	table := fixture()
	all := types.Criteria{Collaborator: "Ana", Status: "pendente", Query: "123"}
	combined := insured(Filter(table, all))

	singles := []types.Criteria{
		{Collaborator: all.Collaborator},
		{Status: all.Status},
		{Query: all.Query},
	}
	for _, c := range singles {
		allowed := make(map[string]bool)
		for _, name := range insured(Filter(table, c)) {
			allowed[name] = true
		}
		for _, name := range combined {
			if !allowed[name] {
				t.Errorf("%q matched all criteria but not %+v", name, c)
			}
		}
	}
}

func TestRelaxingACriterionGivesSuperset(t *testing.T) {
	table := fixture()
	all := types.Criteria{Collaborator: "Ana", Status: "pendente", Query: "123"}
	combined := insured(Filter(table, all))

	relaxed := []types.Criteria{
		{Collaborator: types.NoRestriction, Status: all.Status, Query: all.Query},
		{Collaborator: all.Collaborator, Status: types.NoRestriction, Query: all.Query},
		{Collaborator: all.Collaborator, Status: all.Status, Query: ""},
	}
	for _, c := range relaxed {
		got := insured(Filter(table, c))
		if len(got) < len(combined) {
			t.Errorf("%+v returned %v, fewer than %v", c, got, combined)
		}
		seen := make(map[string]bool)
		for _, name := range got {
			seen[name] = true
		}
		for _, name := range combined {
			if !seen[name] {
				t.Errorf("%+v lost %q", c, name)
			}
		}
	}
}

func TestFilterSkipsAbsentColumns(t *testing.T) {
	table := types.NewTable("x", []string{"outra"}, []types.Record{
		{Fields: map[string]string{"outra": "a"}},
		{Fields: map[string]string{"outra": "b"}},
	})

	got := Filter(table, types.Criteria{Collaborator: "Ana", Status: "pendente", Query: "zzz"})
	if got.Len() != 2 {
		t.Errorf("expected every row when no criterion column exists, got %d", got.Len())
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	table := fixture()
	_ = Filter(table, types.Criteria{Collaborator: "Bruno"})
	if table.Len() != 4 {
		t.Errorf("input table changed: %d records", table.Len())
	}
}

func TestOptions(t *testing.T) {
	opts := Options(fixture())

	if want := []string{"Ana", "Bruno"}; !reflect.DeepEqual(opts.Collaborators, want) {
		t.Errorf("Collaborators = %v, want %v", opts.Collaborators, want)
	}
	if want := []string{"pendente", "renovado"}; !reflect.DeepEqual(opts.Statuses, want) {
		t.Errorf("Statuses = %v, want %v", opts.Statuses, want)
	}
}

func TestOptionsWithoutColumns(t *testing.T) {
	opts := Options(types.NewTable("x", []string{"outra"}, nil))
	if len(opts.Collaborators) != 0 || len(opts.Statuses) != 0 {
		t.Errorf("expected empty options, got %+v", opts)
	}
}

func TestSortLabelsUsesPortugueseCollation(t *testing.T) {
	labels := []string{"zelador", "Élcio", "ana", "Bruno", "ávila"}
	SortLabels(labels)

	want := []string{"ana", "ávila", "Bruno", "Élcio", "zelador"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("SortLabels = %v, want %v", labels, want)
	}
}
