package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// Initial stack capacity in cells.  Each cell is 8 bytes.
const initialStackCapacity = 16

// declareRuntime emits the fixed runtime prologue: the libc externs, the
// 8-byte cell type, the stack globals, the 26 variable cells, and the stack
// lifecycle and access helpers.
func (g *Generator) declareRuntime() {
	// the stack stores tagged-by-consumer 8-byte cells; there is no runtime
	// type tag, so each helper below exposes one typed view of a cell
	g.valueType = g.mod.NewTypeDef("union.FalseValue", types.NewStruct(types.NewArray(8, types.I8)))
	g.cellPtrType = types.NewPointer(g.valueType)
	g.quotePtrType = types.NewPointer(types.NewFunc(types.Void))

	// libc externs with C ABI
	g.mallocFn = g.mod.NewFunc("malloc", types.I8Ptr, ir.NewParam("", types.I64))
	g.reallocFn = g.mod.NewFunc("realloc", types.I8Ptr, ir.NewParam("", types.I8Ptr), ir.NewParam("", types.I64))
	g.freeFn = g.mod.NewFunc("free", types.Void, ir.NewParam("", types.I8Ptr))
	g.putcharFn = g.mod.NewFunc("putchar", types.I32, ir.NewParam("", types.I32))
	g.getcharFn = g.mod.NewFunc("getchar", types.I32)
	g.printfFn = g.mod.NewFunc("printf", types.I32, ir.NewParam("", types.I8Ptr))
	g.printfFn.Sig.Variadic = true

	// printf format strings
	g.fmtStr = g.newPrivateStr(".fmt", "%s")
	g.numStr = g.newPrivateStr(".num", "%d")

	// the runtime stack: heap cell buffer, occupancy, capacity
	g.stack = g.mod.NewGlobalDef("stack", constant.NewNull(g.cellPtrType))
	g.stackSize = g.mod.NewGlobalDef("stack_size", constant.NewInt(types.I64, 0))
	g.stackCap = g.mod.NewGlobalDef("stack_capacity", constant.NewInt(types.I64, 0))

	// the 26 named storage cells
	for c := 'a'; c <= 'z'; c++ {
		g.vars[c] = g.mod.NewGlobalDef("var_"+string(c), constant.NewZeroInitializer(g.valueType))
	}

	g.buildStackInit()
	g.buildPushHelpers()
	g.buildPopHelpers()
	g.buildPeekHelpers()
	g.buildStackFree()
}

// newPrivateStr emits a private NUL-terminated string constant.
func (g *Generator) newPrivateStr(name, text string) *ir.Global {
	glob := g.mod.NewGlobalDef(name, constant.NewCharArrayFromString(text+"\x00"))
	glob.Linkage = enum.LinkagePrivate
	glob.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	glob.Immutable = true
	return glob
}

// -----------------------------------------------------------------------------

// buildStackInit builds `@stack_init`, which allocates the initial cell
// buffer.
func (g *Generator) buildStackInit() {
	g.stackInit = g.mod.NewFunc("stack_init", types.Void)
	b := g.stackInit.NewBlock("entry")

	raw := b.NewCall(g.mallocFn, constant.NewInt(types.I64, initialStackCapacity*8))
	buf := b.NewBitCast(raw, g.cellPtrType)
	b.NewStore(buf, g.stack)
	b.NewStore(constant.NewInt(types.I64, 0), g.stackSize)
	b.NewStore(constant.NewInt(types.I64, initialStackCapacity), g.stackCap)
	b.NewRet(nil)
}

// buildStackFree builds `@stack_free`, which releases the cell buffer.  The
// size and capacity globals are deliberately left as-is: the stack lives for
// exactly one program run.
func (g *Generator) buildStackFree() {
	g.stackFree = g.mod.NewFunc("stack_free", types.Void)
	b := g.stackFree.NewBlock("entry")

	buf := b.NewLoad(g.cellPtrType, g.stack)
	raw := b.NewBitCast(buf, types.I8Ptr)
	b.NewCall(g.freeFn, raw)
	b.NewRet(nil)
}

// -----------------------------------------------------------------------------

// buildPushHelpers builds the four push helpers.  The `any` helper owns the
// growth logic; the typed helpers convert their operand to the cell's raw
// bit pattern and delegate.
func (g *Generator) buildPushHelpers() {
	// stack_push_any
	{
		param := ir.NewParam("value", types.I64)
		g.pushAny = g.mod.NewFunc("stack_push_any", types.Void, param)

		entry := g.pushAny.NewBlock("entry")
		grow := g.pushAny.NewBlock("grow")
		store := g.pushAny.NewBlock("store")

		size := entry.NewLoad(types.I64, g.stackSize)
		capacity := entry.NewLoad(types.I64, g.stackCap)
		full := entry.NewICmp(enum.IPredEQ, size, capacity)
		entry.NewCondBr(full, grow, store)

		// double the buffer when full; the stack never shrinks
		newCap := grow.NewMul(capacity, constant.NewInt(types.I64, 2))
		oldBuf := grow.NewLoad(g.cellPtrType, g.stack)
		oldRaw := grow.NewBitCast(oldBuf, types.I8Ptr)
		newBytes := grow.NewMul(newCap, constant.NewInt(types.I64, 8))
		newRaw := grow.NewCall(g.reallocFn, oldRaw, newBytes)
		newBuf := grow.NewBitCast(newRaw, g.cellPtrType)
		grow.NewStore(newBuf, g.stack)
		grow.NewStore(newCap, g.stackCap)
		grow.NewBr(store)

		buf := store.NewLoad(g.cellPtrType, g.stack)
		cell := store.NewGetElementPtr(g.valueType, buf, size)
		slot := store.NewBitCast(cell, types.NewPointer(types.I64))
		store.NewStore(param, slot)
		newSize := store.NewAdd(size, constant.NewInt(types.I64, 1))
		store.NewStore(newSize, g.stackSize)
		store.NewRet(nil)
	}

	// stack_push_int
	{
		param := ir.NewParam("value", types.I32)
		g.pushInt = g.mod.NewFunc("stack_push_int", types.Void, param)

		b := g.pushInt.NewBlock("entry")
		wide := b.NewZExt(param, types.I64)
		b.NewCall(g.pushAny, wide)
		b.NewRet(nil)
	}

	// stack_push_ref
	{
		param := ir.NewParam("ref", g.cellPtrType)
		g.pushRef = g.mod.NewFunc("stack_push_ref", types.Void, param)

		b := g.pushRef.NewBlock("entry")
		wide := b.NewPtrToInt(param, types.I64)
		b.NewCall(g.pushAny, wide)
		b.NewRet(nil)
	}

	// stack_push_quote
	{
		param := ir.NewParam("quote", g.quotePtrType)
		g.pushQuote = g.mod.NewFunc("stack_push_quote", types.Void, param)

		b := g.pushQuote.NewBlock("entry")
		wide := b.NewPtrToInt(param, types.I64)
		b.NewCall(g.pushAny, wide)
		b.NewRet(nil)
	}
}

// buildPopHelpers builds the four pop helpers.
func (g *Generator) buildPopHelpers() {
	// stack_pop_any
	{
		g.popAny = g.mod.NewFunc("stack_pop_any", types.I64)

		b := g.popAny.NewBlock("entry")
		size := b.NewLoad(types.I64, g.stackSize)
		newSize := b.NewSub(size, constant.NewInt(types.I64, 1))
		b.NewStore(newSize, g.stackSize)
		buf := b.NewLoad(g.cellPtrType, g.stack)
		cell := b.NewGetElementPtr(g.valueType, buf, newSize)
		slot := b.NewBitCast(cell, types.NewPointer(types.I64))
		b.NewRet(b.NewLoad(types.I64, slot))
	}

	// stack_pop_int
	{
		g.popInt = g.mod.NewFunc("stack_pop_int", types.I32)

		b := g.popInt.NewBlock("entry")
		wide := b.NewCall(g.popAny)
		b.NewRet(b.NewTrunc(wide, types.I32))
	}

	// stack_pop_ref
	{
		g.popRef = g.mod.NewFunc("stack_pop_ref", g.cellPtrType)

		b := g.popRef.NewBlock("entry")
		wide := b.NewCall(g.popAny)
		b.NewRet(b.NewIntToPtr(wide, g.cellPtrType))
	}

	// stack_pop_quote
	{
		g.popQuote = g.mod.NewFunc("stack_pop_quote", g.quotePtrType)

		b := g.popQuote.NewBlock("entry")
		wide := b.NewCall(g.popAny)
		b.NewRet(b.NewIntToPtr(wide, g.quotePtrType))
	}
}

// buildPeekHelpers builds the four peek helpers.  Peek takes a depth below the
// top of the stack; depth 0 is the top cell.  There is no bounds check.
func (g *Generator) buildPeekHelpers() {
	// stack_peek_any
	{
		param := ir.NewParam("depth", types.I64)
		g.peekAny = g.mod.NewFunc("stack_peek_any", types.I64, param)

		b := g.peekAny.NewBlock("entry")
		size := b.NewLoad(types.I64, g.stackSize)
		above := b.NewSub(size, param)
		index := b.NewSub(above, constant.NewInt(types.I64, 1))
		buf := b.NewLoad(g.cellPtrType, g.stack)
		cell := b.NewGetElementPtr(g.valueType, buf, index)
		slot := b.NewBitCast(cell, types.NewPointer(types.I64))
		b.NewRet(b.NewLoad(types.I64, slot))
	}

	// stack_peek_int
	{
		param := ir.NewParam("depth", types.I64)
		g.peekInt = g.mod.NewFunc("stack_peek_int", types.I32, param)

		b := g.peekInt.NewBlock("entry")
		wide := b.NewCall(g.peekAny, param)
		b.NewRet(b.NewTrunc(wide, types.I32))
	}

	// stack_peek_ref
	{
		param := ir.NewParam("depth", types.I64)
		g.peekRef = g.mod.NewFunc("stack_peek_ref", g.cellPtrType, param)

		b := g.peekRef.NewBlock("entry")
		wide := b.NewCall(g.peekAny, param)
		b.NewRet(b.NewIntToPtr(wide, g.cellPtrType))
	}

	// stack_peek_quote
	{
		param := ir.NewParam("depth", types.I64)
		g.peekQuote = g.mod.NewFunc("stack_peek_quote", g.quotePtrType, param)

		b := g.peekQuote.NewBlock("entry")
		wide := b.NewCall(g.peekAny, param)
		b.NewRet(b.NewIntToPtr(wide, g.quotePtrType))
	}
}
