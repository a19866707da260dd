package files

import (
	"errors"
	"reflect"
	"testing"

	"github.com/farxc/painel-seguros/internal/logger"
	"github.com/xuri/excelize/v2"
)

func TestDecodeCSV(t *testing.T) {
	data := []byte("\xef\xbb\xbf Dia ,Segurado,  Status  \n05/01/2025,Ana Paula,Pendente \n06/01/2025,Bruno\n\n")

	df, err := DecodeCSV(data)
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if got, want := df.Names(), []string{"dia", "segurado", "status"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if df.Nrow() != 2 {
		t.Fatalf("Nrow() = %d, want 2", df.Nrow())
	}
	if got := df.Col("segurado").Elem(1).String(); got != "Bruno" {
		t.Errorf("segurado[1] = %q", got)
	}
	if got := df.Col("status").Elem(1).String(); got != "" {
		t.Errorf("padded status[1] = %q, want empty", got)
	}
	if got := df.Col("dia").Elem(0).String(); got != "05/01/2025" {
		t.Errorf("dia[0] = %q, must stay text", got)
	}
}

func TestDecodeCSVWindows1252(t *testing.T) {
	// "Apólice,Prêmio Líquido" in cp1252
	data := []byte("Ap\xf3lice,Pr\xeamio L\xedquido\n123,\"1.234,56\"\n")

	df, err := DecodeCSV(data)
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if got, want := df.Names(), []string{"apólice", "prêmio líquido"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := df.Col("prêmio líquido").Elem(0).String(); got != "1.234,56" {
		t.Errorf("premium = %q", got)
	}
}

func TestDecodeCSVRejectsHTML(t *testing.T) {
	pages := []string{
		"<!DOCTYPE html><html><head><title>Sign in</title></head>\n<body>Login required</body></html>\n",
		"\xef\xbb\xbf  <HTML><body>x</body></HTML>",
	}
	for _, page := range pages {
		if _, err := DecodeCSV([]byte(page)); !errors.Is(err, ErrNotCSV) {
			t.Errorf("DecodeCSV(%q) error = %v, want ErrNotCSV", page, err)
		}
	}
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	df, err := DecodeCSV([]byte("Status,Colaborador\n"))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if df.Nrow() != 0 || df.Ncol() != 2 {
		t.Errorf("got %dx%d, want 0x2", df.Nrow(), df.Ncol())
	}
}

func TestDecodeCSVEmpty(t *testing.T) {
	if _, err := DecodeCSV([]byte("\n\n")); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestBuildFrameHeaders(t *testing.T) {
	records := [][]string{
		{"", "", ""},
		{"Status", "", "status", ""},
		{"ok", "nota", "x", ""},
	}
	df, err := BuildFrame(records)
	if err != nil {
		t.Fatalf("BuildFrame: %v", err)
	}
	want := []string{"status", "coluna 2", "status (2)"}
	if got := df.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestDecodeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "2026"); err != nil {
		t.Fatal(err)
	}
	f.SetSheetRow("2026", "A2", &[]interface{}{" Dia", "Segurado", "Prêmio Líquido", "Status"})
	f.SetSheetRow("2026", "A3", &[]interface{}{"05/01/2025", "Ana", "R$ 100,00", "Pendente"})
	f.SetSheetRow("2026", "A4", &[]interface{}{"06/01/2025", "Bruno"})

	if _, err := f.NewSheet("vazia"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("2027"); err != nil {
		t.Fatal(err)
	}
	f.SetSheetRow("2027", "A1", &[]interface{}{"Status"})
	f.SetSheetRow("2027", "A2", &[]interface{}{"ok"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	frames, err := DecodeWorkbook(buf.Bytes(), logger.NewNop())
	if err != nil {
		t.Fatalf("DecodeWorkbook: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 usable sheets, got %d", len(frames))
	}
	if frames[0].Name != "2026" || frames[1].Name != "2027" {
		t.Errorf("sheet order = %s, %s", frames[0].Name, frames[1].Name)
	}

	df := frames[0].Frame
	if got, want := df.Names(), []string{"dia", "segurado", "prêmio líquido", "status"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if df.Nrow() != 2 {
		t.Errorf("Nrow() = %d, want 2", df.Nrow())
	}
}

func TestDecodeWorkbookGarbage(t *testing.T) {
	if _, err := DecodeWorkbook([]byte("definitely not a workbook"), logger.NewNop()); err == nil {
		t.Fatal("expected error for garbage bytes")
	}
}
