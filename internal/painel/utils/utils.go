package utils

import (
	"github.com/go-gota/gota/dataframe"
)

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// GetStr returns the cell at (col, rowIdx) as text. Absent columns, NA
// cells and out-of-range rows yield "".
func GetStr(col string, rowIdx int, df *dataframe.DataFrame) string {
	if df == nil || rowIdx < 0 || rowIdx >= df.Nrow() {
		return ""
	}

	if !containsString(df.Names(), col) {
		return ""
	}

	elem := df.Col(col).Elem(rowIdx)
	if elem.IsNA() {
		return ""
	}
	return elem.String()
}
