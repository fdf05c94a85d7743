package ast

// Equal reports whether two AST nodes are structurally equal: same kind, same
// payload, and, for quotations, pairwise equal bodies.  Every child of a
// quotation is compared, so two quotes differing only in a later child are not
// equal.  Spans are ignored.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case *Variable:
		bv, ok := b.(*Variable)
		return ok && av.Name == bv.Name
	case *StringLit:
		bv, ok := b.(*StringLit)
		return ok && av.Value == bv.Value
	case *IntLit:
		bv, ok := b.(*IntLit)
		return ok && av.Value == bv.Value
	case *Quote:
		bv, ok := b.(*Quote)
		return ok && EqualSlice(av.Body, bv.Body)
	case *Op:
		bv, ok := b.(*Op)
		return ok && av.Kind == bv.Kind
	}

	return false
}

// EqualSlice reports whether two statement sequences are pairwise structurally
// equal.
func EqualSlice(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}

	for i, an := range a {
		if !Equal(an, b[i]) {
			return false
		}
	}

	return true
}
