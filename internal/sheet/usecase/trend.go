package usecase

import "github.com/shandysiswandi/gosheet/internal/sheet/entity"

// Slope thresholds used to classify a column. They are absolute and do not
// scale with the values of the column, so columns with a small numeric range
// are mostly reported as stable.
const (
	increasingSlope = 0.5
	decreasingSlope = -0.5
)

// AnalyzeTrends buckets every numeric cell by column and classifies each
// column by the least-squares slope of its values against the index 1..N.
func AnalyzeTrends(fileID string, records entity.RecordSet) (entity.TrendReport, error) {
	if len(records) == 0 {
		return entity.TrendReport{}, entity.ErrNoDataForFile
	}

	var order []string
	buckets := make(map[string][]float64)
	for _, rec := range records {
		for _, cell := range rec {
			num, ok := toNumber(cell.Value)
			if !ok {
				continue
			}
			if _, seen := buckets[cell.Column]; !seen {
				order = append(order, cell.Column)
			}
			buckets[cell.Column] = append(buckets[cell.Column], num)
		}
	}

	report := entity.TrendReport{
		FileID:  fileID,
		Columns: make([]entity.ColumnTrend, 0, len(order)),
	}
	for _, col := range order {
		values := buckets[col]
		avg, lo, hi := describe(values)
		report.Columns = append(report.Columns, entity.ColumnTrend{
			Column:    col,
			Direction: classify(values),
			Average:   avg,
			Min:       lo,
			Max:       hi,
			Count:     len(values),
		})
	}

	return report, nil
}

func describe(values []float64) (avg, lo, hi float64) {
	lo, hi = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return sum / float64(len(values)), lo, hi
}

func classify(values []float64) entity.Direction {
	if len(values) < 2 {
		return entity.DirectionNotEnoughData
	}

	s := slope(values)
	switch {
	case s > increasingSlope:
		return entity.DirectionIncreasing
	case s < decreasingSlope:
		return entity.DirectionDecreasing
	default:
		return entity.DirectionStable
	}
}

// slope is the ordinary least-squares slope of values against 1..N.
func slope(values []float64) float64 {
	n := float64(len(values))
	meanX := (n + 1) / 2

	var meanY float64
	for _, v := range values {
		meanY += v
	}
	meanY /= n

	var num, den float64
	for i, v := range values {
		dx := float64(i+1) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}

	if den == 0 {
		return 0
	}
	return num / den
}
