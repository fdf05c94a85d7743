package ast

import "testing"

func intLit(v int32) Node     { return &IntLit{Value: v} }
func op(kind OpKind) Node     { return &Op{Kind: kind} }
func variable(c rune) Node    { return &Variable{Name: c} }
func str(s string) Node       { return &StringLit{Value: s} }
func quote(body ...Node) Node { return &Quote{Body: body} }

func TestEqual_Atoms(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"same int", intLit(5), intLit(5), true},
		{"different int", intLit(5), intLit(6), false},
		{"same variable", variable('a'), variable('a'), true},
		{"different variable", variable('a'), variable('b'), false},
		{"same string", str("hi"), str("hi"), true},
		{"different string", str("hi"), str("ho"), false},
		{"same op", op(OpPlus), op(OpPlus), true},
		{"different op", op(OpPlus), op(OpMinus), false},
		{"kind mismatch", intLit(5), str("5"), false},
		{"op vs variable", op(OpDup), variable('d'), false},
	}

	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqual_Quotes(t *testing.T) {
	if !Equal(quote(intLit(1), op(OpPrintInt)), quote(intLit(1), op(OpPrintInt))) {
		t.Error("identical quote bodies should be equal")
	}

	if Equal(quote(intLit(1)), quote(intLit(1), intLit(2))) {
		t.Error("quotes of different lengths should not be equal")
	}

	if Equal(quote(), quote(intLit(1))) {
		t.Error("the empty quote should not equal a non-empty quote")
	}
}

// Two quotes sharing a first child but differing in a later one must not be
// equal: deduplication is only sound when every child is compared.
func TestEqual_SecondChildDiffers(t *testing.T) {
	a := quote(intLit(1), intLit(2))
	b := quote(intLit(1), intLit(3))

	if Equal(a, b) {
		t.Error("quotes differing in their second child should not be equal")
	}
}

func TestEqual_DeepNesting(t *testing.T) {
	a := quote(quote(quote(intLit(1), op(OpDup))), variable('x'))
	b := quote(quote(quote(intLit(1), op(OpDup))), variable('x'))

	if !Equal(a, b) {
		t.Error("deeply nested identical quotes should be equal")
	}

	c := quote(quote(quote(intLit(1), op(OpDiscard))), variable('x'))
	if Equal(a, c) {
		t.Error("quotes differing deep in the tree should not be equal")
	}
}

func TestEqualSlice(t *testing.T) {
	a := []Node{intLit(1), op(OpPlus)}
	b := []Node{intLit(1), op(OpPlus)}
	c := []Node{intLit(1)}

	if !EqualSlice(a, b) {
		t.Error("equal sequences reported unequal")
	}

	if EqualSlice(a, c) {
		t.Error("sequences of different lengths reported equal")
	}

	if !EqualSlice(nil, nil) {
		t.Error("two empty sequences should be equal")
	}
}
