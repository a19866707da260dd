package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/farxc/painel-seguros/internal/painel"
	"github.com/farxc/painel-seguros/internal/painel/query"
	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/painel/utils"
	"github.com/farxc/painel-seguros/internal/store"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTabs(w io.Writer, sheets *painel.Sheets) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ABA\tLINHAS\tCOLUNAS")
	for _, t := range sheets.Tabs {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", t.Name, t.Rows, len(t.Columns))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nAtualizado em %s\n", sheets.FetchedAt.Local().Format("02/01/2006 15:04:05"))
	return err
}

func printReport(w io.Writer, r *painel.Report, withRows bool) error {
	s := r.Summary

	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Aba:\t%s\n", r.Tab)
	fmt.Fprintf(tw, "Registros:\t%d\n", s.Total)
	fmt.Fprintf(tw, "Pendentes:\t%d\n", s.Pending)
	fmt.Fprintf(tw, "Renovados:\t%d\n", s.Renewed)
	for _, label := range otherStatuses(s.StatusCounts) {
		fmt.Fprintf(tw, "%s:\t%d\n", label, s.StatusCounts[label])
	}
	if s.Premium.Available {
		fmt.Fprintf(tw, "Prêmio líquido:\t%s\n", s.Premium.Formatted)
		if s.Premium.Skipped > 0 {
			fmt.Fprintf(tw, "Valores ignorados:\t%d\n", s.Premium.Skipped)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Daily) > 0 {
		fmt.Fprintln(w, "\nPrêmio por dia")
		tw = newTabWriter(w)
		for _, d := range s.Daily {
			fmt.Fprintf(tw, "%s\t%s\n", d.Day.Format("02/01/2006"), utils.FormatBRL(d.Total))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !withRows || len(r.Records) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = newTabWriter(w)
	fmt.Fprintln(tw, strings.Join(r.Columns, "\t")+"\t"+"status normalizado")
	for _, rec := range r.Records {
		cells := make([]string, 0, len(r.Columns)+1)
		for _, col := range r.Columns {
			cells = append(cells, rec.Get(col))
		}
		cells = append(cells, rec.Status)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// otherStatuses lists labels other than the canonical two, in the same order
// as the status options.
func otherStatuses(counts map[string]int) []string {
	var out []string
	for label := range counts {
		if label != types.StatusPending && label != types.StatusRenewed {
			out = append(out, label)
		}
	}
	query.SortLabels(out)
	return out
}

func printHistory(w io.Writer, rows []store.LoadHistory) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tQUANDO\tGATILHO\tSTATUS\tABAS\tLINHAS\tDURAÇÃO\tERRO")
	for _, h := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			h.ID,
			h.ProcessedAt.Local().Format("02/01/2006 15:04:05"),
			h.TriggerType,
			h.Status,
			h.TabCount,
			h.RowCount,
			time.Duration(h.DurationMs)*time.Millisecond,
			h.ErrorMessage,
		)
	}
	return tw.Flush()
}
