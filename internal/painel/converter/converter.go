package converter

import (
	"github.com/farxc/painel-seguros/internal/painel/types"
	"github.com/farxc/painel-seguros/internal/painel/utils"
	"github.com/go-gota/gota/dataframe"
)

// DfRowToRecord copies every column of row rowIdx into a Record. NA cells
// become "". The derived status is left for the caller.
func DfRowToRecord(df dataframe.DataFrame, rowIdx int) types.Record {
	names := df.Names()
	fields := make(map[string]string, len(names))
	for _, col := range names {
		fields[col] = utils.GetStr(col, rowIdx, &df)
	}
	return types.Record{Fields: fields}
}

// DfToTable converts a decoded tab into a Table and derives the normalised
// status of every record. Without a status column every status stays "".
func DfToTable(name string, df dataframe.DataFrame) *types.Table {
	table := types.NewTable(name, df.Names(), nil)
	statusCol, hasStatus := table.Column(types.ColStatus)

	records := make([]types.Record, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		record := DfRowToRecord(df, i)
		if hasStatus {
			record.Status = utils.NormalizeStatus(record.Fields[statusCol])
		}
		records = append(records, record)
	}

	table.Records = records
	return table
}
