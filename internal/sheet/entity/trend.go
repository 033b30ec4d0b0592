package entity

import (
	"fmt"
	"strconv"
	"strings"
)

type Direction string

const (
	DirectionIncreasing    Direction = "increasing"
	DirectionDecreasing    Direction = "decreasing"
	DirectionStable        Direction = "stable"
	DirectionNotEnoughData Direction = "not enough data"
)

type ColumnTrend struct {
	Column    string
	Direction Direction
	Average   float64
	Min       float64
	Max       float64
	Count     int
}

// TrendReport holds one entry per column that had at least one numeric value,
// in the order columns were first seen while scanning.
type TrendReport struct {
	FileID  string
	Columns []ColumnTrend
}

// HasTrends reports whether any numeric column was found.
func (r TrendReport) HasTrends() bool {
	return len(r.Columns) > 0
}

// Summary renders the report as human readable text.
func (r TrendReport) Summary() string {
	if !r.HasTrends() {
		return "No numeric trends could be analyzed."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Trend Analysis for file %s:\n", r.FileID)
	for _, c := range r.Columns {
		fmt.Fprintf(&sb, "\n• %s is %s (avg: %.2f, min: %s, max: %s)",
			c.Column, c.Direction, c.Average, formatNumber(c.Min), formatNumber(c.Max))
	}

	return sb.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
