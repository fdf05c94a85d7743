package ast

import "falsec/report"

// Node is the abstract interface for all AST nodes.  A FALSE program is a flat
// sequence of nodes; the only nesting comes from quotations.
type Node interface {
	// Span returns the text span of the AST node.
	Span() *report.TextSpan
}

// NodeBase is a utility base struct for all AST nodes.
type NodeBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewNodeBaseOn creates a new node base with the given span.
func NewNodeBaseOn(span *report.TextSpan) NodeBase {
	return NodeBase{span: span}
}

// NewNodeBaseOver creates a new node base spanning over two spans.
func NewNodeBaseOver(start, end *report.TextSpan) NodeBase {
	return NodeBase{span: report.NewSpanOver(start, end)}
}

func (nb NodeBase) Span() *report.TextSpan {
	return nb.span
}

// -----------------------------------------------------------------------------

// Variable is a reference to one of the 26 named storage cells, `a` through
// `z`.  On its own it pushes the cell's address; it is consumed by the fetch
// and store operations.
type Variable struct {
	NodeBase

	// The one-letter name of the variable.
	Name rune
}

// StringLit is a string literal.  FALSE string literals are printed at the
// point they occur; they are never pushed onto the stack.
type StringLit struct {
	NodeBase

	// The raw bytes between the quote delimiters.
	Value string
}

// IntLit is an integer literal: either a run of decimal digits or a character
// literal already folded to its code unit by the lexer.
type IntLit struct {
	NodeBase

	// The literal's value.  Arithmetic on the runtime stack is 32-bit.
	Value int32
}

// Quote is a quotation: a deferred code block pushed as a first-class value.
type Quote struct {
	NodeBase

	// The statement sequence making up the quotation's body.
	Body []Node
}

// Op is any of the payload-free primitive operations.
type Op struct {
	NodeBase

	// The kind of the operation.  This must be one of the enumerated op kinds.
	Kind OpKind
}

// OpKind enumerates the payload-free primitive operations.
type OpKind int

const (
	OpGetVar OpKind = iota
	OpSetVar
	OpDup
	OpDiscard
	OpSwap
	OpRotate
	OpTake
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpNegate
	OpBitAnd
	OpBitOr
	OpBitInvert
	OpEqual
	OpGreaterThan
	OpExecute
	OpExecuteIf
	OpWhile
	OpGetc
	OpPutc
	OpPrintInt
)
