package core

// NonConstantOrderings returns the orderings whose expression is neither a
// literal nor a parameter, preserving order.
func NonConstantOrderings(orderings []Ordering) []Ordering {
	var out []Ordering
	for _, o := range orderings {
		if !IsConstant(o.Expr) {
			out = append(out, o)
		}
	}
	return out
}
