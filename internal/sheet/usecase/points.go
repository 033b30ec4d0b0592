package usecase

import (
	"strings"

	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
)

// PointScanLimit is the number of records ExtractPoints reads at most.
const PointScanLimit = 100

type AxisSelection struct {
	X string
	Y string
	Z string
}

func (a AxisSelection) normalize() AxisSelection {
	return AxisSelection{
		X: strings.TrimSpace(a.X),
		Y: strings.TrimSpace(a.Y),
		Z: strings.TrimSpace(a.Z),
	}
}

// ExtractPoints scans at most limit records in order and returns a point for
// every record whose x and y values are numeric. A non-numeric z only drops the
// z coordinate of that point.
func ExtractPoints(records entity.RecordSet, axes AxisSelection, limit int) ([]entity.PlotPoint, error) {
	axes = axes.normalize()
	if axes.X == "" || axes.Y == "" {
		return nil, entity.ErrMissingAxisSelection
	}

	if limit < 1 {
		limit = PointScanLimit
	}
	if len(records) > limit {
		records = records[:limit]
	}

	points := make([]entity.PlotPoint, 0, len(records))
	for _, rec := range records {
		x, ok := numericCell(rec, axes.X)
		if !ok {
			continue
		}
		y, ok := numericCell(rec, axes.Y)
		if !ok {
			continue
		}

		point := entity.PlotPoint{X: x, Y: y}
		if axes.Z != "" {
			if z, ok := numericCell(rec, axes.Z); ok {
				point.Z = &z
			}
		}
		points = append(points, point)
	}

	return points, nil
}

func numericCell(rec entity.Record, column string) (float64, bool) {
	v, ok := rec.Get(column)
	if !ok {
		return 0, false
	}
	return toNumber(v)
}
