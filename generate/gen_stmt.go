package generate

import (
	"falsec/ast"
	"falsec/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// genStmts lowers a statement sequence into the current block.
func (g *Generator) genStmts(stmts []ast.Node) {
	for _, stmt := range stmts {
		g.genStmt(stmt)
	}
}

// genStmt lowers a single statement.
func (g *Generator) genStmt(stmt ast.Node) {
	switch v := stmt.(type) {
	case *ast.Variable:
		// a variable pushes the address of its cell
		g.block.NewCall(g.pushRef, g.vars[v.Name])
	case *ast.IntLit:
		g.block.NewCall(g.pushInt, constant.NewInt(types.I32, int64(v.Value)))
	case *ast.StringLit:
		// strings are printed where they occur, never pushed
		strGlob := g.internString(v.Value)
		g.block.NewCall(g.printfFn, g.charPtr(g.fmtStr), g.charPtr(strGlob))
	case *ast.Quote:
		fn := g.hoistQuote(v)
		g.block.NewCall(g.pushQuote, fn)
	case *ast.Op:
		g.genOp(v.Kind)
	default:
		report.ReportICE("codegen received unknown AST node %T", stmt)
	}
}

// genOp lowers a payload-free primitive operation.
func (g *Generator) genOp(kind ast.OpKind) {
	b := g.block

	switch kind {
	case ast.OpGetVar:
		cell := b.NewCall(g.popRef)
		slot := b.NewBitCast(cell, types.NewPointer(types.I64))
		b.NewCall(g.pushAny, b.NewLoad(types.I64, slot))
	case ast.OpSetVar:
		cell := b.NewCall(g.popRef)
		val := b.NewCall(g.popAny)
		slot := b.NewBitCast(cell, types.NewPointer(types.I64))
		b.NewStore(val, slot)
	case ast.OpDup:
		top := b.NewCall(g.peekAny, constant.NewInt(types.I64, 0))
		b.NewCall(g.pushAny, top)
	case ast.OpDiscard:
		b.NewCall(g.popAny)
	case ast.OpSwap:
		a := b.NewCall(g.popAny)
		c := b.NewCall(g.popAny)
		b.NewCall(g.pushAny, a)
		b.NewCall(g.pushAny, c)
	case ast.OpRotate:
		// the third-from-top cell becomes the new top
		x := b.NewCall(g.popAny)
		y := b.NewCall(g.popAny)
		z := b.NewCall(g.popAny)
		b.NewCall(g.pushAny, y)
		b.NewCall(g.pushAny, x)
		b.NewCall(g.pushAny, z)
	case ast.OpTake:
		depth := b.NewCall(g.popInt)
		wide := b.NewSExt(depth, types.I64)
		b.NewCall(g.pushAny, b.NewCall(g.peekAny, wide))
	case ast.OpPlus:
		rhs := b.NewCall(g.popInt)
		lhs := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewAdd(lhs, rhs))
	case ast.OpMinus:
		rhs := b.NewCall(g.popInt)
		lhs := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewSub(lhs, rhs))
	case ast.OpMul:
		rhs := b.NewCall(g.popInt)
		lhs := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewMul(lhs, rhs))
	case ast.OpDiv:
		rhs := b.NewCall(g.popInt)
		lhs := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewSDiv(lhs, rhs))
	case ast.OpNegate:
		// -int => 0 - int
		operand := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewSub(constant.NewInt(types.I32, 0), operand))
	case ast.OpBitAnd:
		rhs := b.NewCall(g.popInt)
		lhs := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewAnd(lhs, rhs))
	case ast.OpBitOr:
		rhs := b.NewCall(g.popInt)
		lhs := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewOr(lhs, rhs))
	case ast.OpBitInvert:
		operand := b.NewCall(g.popInt)
		b.NewCall(g.pushInt, b.NewXor(operand, constant.NewInt(types.I32, -1)))
	case ast.OpEqual:
		g.genComparison(enum.IPredEQ)
	case ast.OpGreaterThan:
		g.genComparison(enum.IPredSGT)
	case ast.OpExecute:
		quote := b.NewCall(g.popQuote)
		b.NewCall(quote)
	case ast.OpExecuteIf:
		g.genExecuteIf()
	case ast.OpWhile:
		g.genWhile()
	case ast.OpGetc:
		b.NewCall(g.pushInt, b.NewCall(g.getcharFn))
	case ast.OpPutc:
		b.NewCall(g.putcharFn, b.NewCall(g.popInt))
	case ast.OpPrintInt:
		b.NewCall(g.printfFn, g.charPtr(g.numStr), b.NewCall(g.popInt))
	default:
		report.ReportICE("codegen received unknown operation kind %d", kind)
	}
}

// genComparison lowers `=` and `>`.  FALSE truth values are all-ones, so the
// i1 comparison result is sign-extended: true becomes -1 and false 0.
func (g *Generator) genComparison(pred enum.IPred) {
	rhs := g.block.NewCall(g.popInt)
	lhs := g.block.NewCall(g.popInt)
	cmp := g.block.NewICmp(pred, lhs, rhs)
	g.block.NewCall(g.pushInt, g.block.NewSExt(cmp, types.I32))
}

// genExecuteIf lowers `?`: pop a quote and a condition, and call the quote if
// the condition is non-zero.
func (g *Generator) genExecuteIf() {
	quote := g.block.NewCall(g.popQuote)
	cond := g.block.NewCall(g.popInt)
	nonZero := g.block.NewICmp(enum.IPredNE, cond, constant.NewInt(types.I32, 0))

	thenBlock := g.appendBlock()
	endBlock := g.appendBlock()

	g.block.NewCondBr(nonZero, thenBlock, endBlock)

	g.block = thenBlock
	g.block.NewCall(quote)
	g.block.NewBr(endBlock)

	g.block = endBlock
}

// genWhile lowers `#`: pop a body quote and a condition quote, then loop
// calling the condition and, while it leaves non-zero on the stack, the body.
func (g *Generator) genWhile() {
	body := g.block.NewCall(g.popQuote)
	cond := g.block.NewCall(g.popQuote)

	headerBlock := g.appendBlock()
	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()

	g.block.NewBr(headerBlock)

	g.block = headerBlock
	g.block.NewCall(cond)
	condVal := g.block.NewCall(g.popInt)
	nonZero := g.block.NewICmp(enum.IPredNE, condVal, constant.NewInt(types.I32, 0))
	g.block.NewCondBr(nonZero, bodyBlock, endBlock)

	g.block = bodyBlock
	g.block.NewCall(body)
	g.block.NewBr(headerBlock)

	g.block = endBlock
}
