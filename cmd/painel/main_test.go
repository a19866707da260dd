package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farxc/painel-seguros/internal/painel"
	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/store"
)

const trackingCSV = "Dia,Segurado,Prêmio Líquido,Colaborador,Status\n" +
	"05/01/2025,João Silva,\"R$ 100,00\",Ana,Pendente\n" +
	"06/01/2025,Maria Souza,\"R$ 50,50\",Ana,aguardando cliente\n"

func configureSheet(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trackingCSV))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("SHEET_URL", srv.URL+"/export?format=csv")
	t.Setenv("SHEET_TABS", "2026:0")
	t.Setenv("SHEET_ID", "")
	t.Setenv("DB_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REQUIRED_COLUMNS", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", "does-not-exist.env"))
	err := cmd.Execute()
	return out.String(), err
}

func TestTabsCommand(t *testing.T) {
	configureSheet(t)

	out, err := execute(t, "tabs")
	if err != nil {
		t.Fatalf("tabs: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2026") || !strings.Contains(out, "ABA") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestReportCommandJSON(t *testing.T) {
	configureSheet(t)

	out, err := execute(t, "report", "--tab", "2026", "--status", "Pendente", "--json")
	if err != nil {
		t.Fatalf("report: %v\n%s", err, out)
	}

	var report painel.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Summary.Total != 1 || report.Summary.Premium.Formatted != "R$ 100,00" {
		t.Errorf("summary = %+v", report.Summary)
	}
}

func TestReportCommandRequiresTab(t *testing.T) {
	configureSheet(t)

	if _, err := execute(t, "report"); err == nil {
		t.Fatal("expected error without --tab")
	}
}

func TestHistoryCommandRequiresDatabase(t *testing.T) {
	configureSheet(t)

	_, err := execute(t, "history")
	if err == nil || !strings.Contains(err.Error(), "DB_ADDR") {
		t.Fatalf("expected DB_ADDR error, got %v", err)
	}
}

func TestHistoryCommandWithSQLite(t *testing.T) {
	configureSheet(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_ADDR", "file:"+t.TempDir()+"/painel.db")

	if out, err := execute(t, "tabs"); err != nil {
		t.Fatalf("tabs: %v\n%s", err, out)
	}
	out, err := execute(t, "history", "--limit", "5")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, store.StatusSuccess) || !strings.Contains(out, store.TriggerTypeScheduled) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrintReport(t *testing.T) {
	report := &painel.Report{
		Tab:     "2026",
		Columns: []string{"segurado", "status"},
		Records: []types.Record{{Fields: map[string]string{"segurado": "Ana", "status": "Pendente"}, Status: "pendente"}},
		Summary: types.Summary{
			Total:        2,
			Pending:      1,
			StatusCounts: map[string]int{"pendente": 1, "aguardando cliente": 1},
			Premium:      types.PremiumTotals{Available: true, Total: 10, Formatted: "R$ 10,00", Parsed: 1, Skipped: 1},
			Daily:        []types.DayTotal{{Day: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Total: 10}},
		},
	}

	var buf bytes.Buffer
	if err := printReport(&buf, report, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{"aguardando cliente:", "R$ 10,00", "05/01/2025", "Valores ignorados:", "status normalizado"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOtherStatusesOrderMatchesOptions(t *testing.T) {
	counts := map[string]int{
		"pendente":   1,
		"renovado":   1,
		"vistoria":   1,
		"aguardando": 1,
		"ênfase":     1,
		"cancelado":  1,
	}
	got := otherStatuses(counts)

	want := []string{"aguardando", "cancelado", "ênfase", "vistoria"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("otherStatuses = %v, want %v", got, want)
	}
}
