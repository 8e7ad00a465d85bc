package repositories

// Fieldset is an ordered collection of column/value pairs for a partial
// update. The update is applied atomically to a single row; building an
// empty Fieldset is legal but repositories reject applying one.
type Fieldset struct {
	columns []string
	values  []interface{}
}

// NewFieldset creates an empty fieldset.
func NewFieldset() *Fieldset {
	return &Fieldset{}
}

// Set appends a column assignment. Column names are trusted internal
// identifiers, never user input.
func (f *Fieldset) Set(column string, value interface{}) {
	f.columns = append(f.columns, column)
	f.values = append(f.values, value)
}

// Len returns the number of assignments.
func (f *Fieldset) Len() int {
	return len(f.columns)
}

// Columns returns the column names in insertion order.
func (f *Fieldset) Columns() []string {
	return f.columns
}

// Values returns the values in insertion order.
func (f *Fieldset) Values() []interface{} {
	return f.values
}
