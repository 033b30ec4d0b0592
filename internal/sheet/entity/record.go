package entity

// Cell is one column/value pair of a Record.
//
// Value holds the raw cell content as decoded from the document: a string,
// a Go numeric kind, a bool, or nil. It is never coerced when stored.
type Cell struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// Record is an ordered mapping from column name to raw cell value.
// Column names are unique within one Record.
type Record []Cell

// Get returns the raw value stored for column.
func (r Record) Get(column string) (any, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return nil, false
}

// Columns returns the column names of the record in order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for _, c := range r {
		cols = append(cols, c.Column)
	}
	return cols
}

// RecordSet is the ordered sequence of records belonging to one uploaded file.
type RecordSet []Record
