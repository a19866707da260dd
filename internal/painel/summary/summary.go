package summary

import (
	"sort"
	"time"

	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/painel/utils"
)

// Summarize computes the counters, premium sum and per-day premium series of
// table. Premiums that do not parse are counted as skipped and left out of
// every sum. The series needs both the day and the net premium columns; rows
// with an unparseable day still count towards the total.
func Summarize(table *types.Table) types.Summary {
	s := types.Summary{
		Total:        table.Len(),
		StatusCounts: make(map[string]int),
	}

	if table.HasColumn(types.ColStatus) {
		for _, r := range table.Records {
			if r.Status == "" {
				continue
			}
			s.StatusCounts[r.Status]++
		}
		s.Pending = s.StatusCounts[types.StatusPending]
		s.Renewed = s.StatusCounts[types.StatusRenewed]
	}

	premiumCol, hasPremium := table.Column(types.ColNetPremium)
	if !hasPremium {
		return s
	}
	s.Premium.Available = true

	dayCol, hasDay := table.Column(types.ColDay)
	byDay := make(map[time.Time]float64)

	for _, r := range table.Records {
		val, ok := utils.ParseCurrency(r.Fields[premiumCol])
		if !ok {
			s.Premium.Skipped++
			continue
		}
		s.Premium.Parsed++
		s.Premium.Total += val

		if !hasDay {
			continue
		}
		if day, ok := utils.ParseDate(r.Fields[dayCol]); ok {
			byDay[day] += val
		}
	}
	s.Premium.Formatted = utils.FormatBRL(s.Premium.Total)

	if hasDay {
		s.Daily = dailySeries(byDay)
	}
	return s
}

func dailySeries(byDay map[time.Time]float64) []types.DayTotal {
	series := make([]types.DayTotal, 0, len(byDay))
	for day, total := range byDay {
		series = append(series, types.DayTotal{Day: day, Total: total})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Day.Before(series[j].Day)
	})
	return series
}
