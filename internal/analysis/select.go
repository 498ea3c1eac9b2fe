package analysis

// NumericColumns returns the names of integer and floating columns in table
// order.
func NumericColumns(t *Table) []string {
	var out []string
	for _, c := range t.Columns {
		if c.Kind.Numeric() {
			out = append(out, c.Name)
		}
	}
	return out
}
