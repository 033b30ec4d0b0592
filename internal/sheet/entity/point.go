package entity

// PlotPoint is a 2D or 3D coordinate extracted from one record.
// Z is nil when no z axis was requested or its value was not numeric.
type PlotPoint struct {
	X float64  `json:"x"`
	Y float64  `json:"y"`
	Z *float64 `json:"z,omitempty"`
}
