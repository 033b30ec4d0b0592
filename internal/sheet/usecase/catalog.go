package usecase

import "github.com/shandysiswandi/gosheet/internal/sheet/entity"

// BuildColumnCatalog returns the column names of the first record only.
//
// Columns that appear exclusively in later records are not listed, although
// ExtractPoints and AnalyzeTrends still process them when named explicitly.
func BuildColumnCatalog(records entity.RecordSet) []string {
	if len(records) == 0 {
		return []string{}
	}
	return records[0].Columns()
}
