package main

import (
	"encoding/json"
	"fmt"

	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/store"
	"github.com/spf13/cobra"
)

func newTabsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List the spreadsheet tabs with their row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(false)
			if err != nil {
				return err
			}
			defer a.close()

			sheets, err := a.service.Sheets(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, sheets)
			}
			return printTabs(cmd.OutOrStdout(), sheets)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newReportCmd() *cobra.Command {
	var (
		tab      string
		criteria types.Criteria
		asJSON   bool
		noRows   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the summary, per-day premiums and records of a tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(false)
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.service.Report(cmd.Context(), tab, criteria)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, report)
			}
			return printReport(cmd.OutOrStdout(), report, !noRows)
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", "", "Tab name (required)")
	cmd.Flags().StringVarP(&criteria.Collaborator, "collaborator", "c", "", "Exact collaborator name (todos = any)")
	cmd.Flags().StringVarP(&criteria.Status, "status", "s", "", "Status label, e.g. pendente or renovado (todos = any)")
	cmd.Flags().StringVarP(&criteria.Query, "query", "q", "", "Search insured, policy and tax id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tables")
	cmd.Flags().BoolVar(&noRows, "summary-only", false, "Do not print the records")
	cmd.MarkFlagRequired("tab")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent spreadsheet loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			a, err := setup(true)
			if err != nil {
				return err
			}
			defer a.close()

			rows, err := a.service.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, rows)
			}
			return printHistory(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultHistoryLimit, "Number of loads to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
