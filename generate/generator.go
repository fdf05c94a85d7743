package generate

import (
	"fmt"

	"falsec/ast"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// hoistedQuote is an entry in the generator's registry of hoisted quotations.
type hoistedQuote struct {
	// The original AST body of the quotation.  Used for structural
	// deduplication of later quotes.
	body []ast.Node

	// The function the body was lowered into.
	fn *ir.Func
}

// Generator is responsible for converting a FALSE AST into an LLVM IR module.
// The emitted module is a stack machine: every operation is lowered to calls
// against a runtime stack of 8-byte cells that lives in the module itself.
// All generator state is scoped to a single compilation.
type Generator struct {
	// mod is the LLVM module being generated.
	mod *ir.Module

	// valueType is the 8-byte stack cell type `%union.FalseValue`.
	valueType types.Type

	// cellPtrType is a pointer to a stack cell.  Variable references on the
	// stack use this view.
	cellPtrType *types.PointerType

	// quotePtrType is the type of a hoisted quotation: a pointer to `void ()`.
	quotePtrType *types.PointerType

	// Declarations for the libc externs the runtime calls into.
	mallocFn, reallocFn, freeFn *ir.Func
	getcharFn, putcharFn        *ir.Func
	printfFn                    *ir.Func

	// The `%s` and `%d` printf format string constants.
	fmtStr, numStr *ir.Global

	// The runtime stack globals: the cell buffer, its occupancy, and its
	// capacity.
	stack, stackSize, stackCap *ir.Global

	// vars maps each variable letter to its zero-initialized global cell.
	vars map[rune]*ir.Global

	// Stack lifecycle and the push/pop/peek helpers monomorphized by view.
	stackInit, stackFree                 *ir.Func
	pushAny, pushInt, pushRef, pushQuote *ir.Func
	popAny, popInt, popRef, popQuote     *ir.Func
	peekAny, peekInt, peekRef, peekQuote *ir.Func

	// lambdas is the registry of hoisted quotation functions.  Quotes with
	// structurally equal bodies share one entry.
	lambdas []hoistedQuote

	// strInterns maps string literal text to its interned constant.
	strInterns map[string]*ir.Global

	// Monotonic counters assigning `@lambda_N` and `@str_N` names.
	lambdaCounter, strCounter int

	// enclosingFunc is the function enclosing the block being compiled.
	enclosingFunc *ir.Func

	// block stores the current block being generated.
	block *ir.Block

	// labelCounter numbers the basic-block labels of the enclosing function.
	labelCounter int
}

// NewGenerator creates a new generator.
func NewGenerator() *Generator {
	return &Generator{
		mod:        ir.NewModule(),
		vars:       make(map[rune]*ir.Global),
		strInterns: make(map[string]*ir.Global),
	}
}

// Generate runs the main generation algorithm for the program.  This process
// is assumed to always succeed: a malformed AST reaching it is a compiler bug.
func (g *Generator) Generate(program []ast.Node) *ir.Module {
	// emit the fixed runtime prologue
	g.declareRuntime()

	// build `main`: initialize the stack, lower the top-level statement
	// sequence in place, release the stack, and return 0
	mainFn := g.mod.NewFunc("main", types.I32)
	g.enclosingFunc = mainFn
	g.labelCounter = 0
	g.block = mainFn.NewBlock("entry")

	g.block.NewCall(g.stackInit)
	g.genStmts(program)
	g.block.NewCall(g.stackFree)
	g.block.NewRet(constant.NewInt(types.I32, 0))

	return g.mod
}

// -----------------------------------------------------------------------------

// hoistQuote promotes a quotation body to a top-level function, reusing an
// existing lambda if a structurally equal body has already been hoisted.
func (g *Generator) hoistQuote(quote *ast.Quote) *ir.Func {
	for _, lam := range g.lambdas {
		if ast.EqualSlice(lam.body, quote.Body) {
			return lam.fn
		}
	}

	fn := g.mod.NewFunc(fmt.Sprintf("lambda_%d", g.lambdaCounter), types.Void)
	g.lambdaCounter++

	g.lambdas = append(g.lambdas, hoistedQuote{body: quote.Body, fn: fn})

	// lower the body into the new function, preserving the position within
	// the enclosing function; nested quotes register themselves in the same
	// registry, flattening arbitrary nesting into top-level definitions
	outerFunc, outerBlock, outerLabels := g.enclosingFunc, g.block, g.labelCounter

	g.enclosingFunc = fn
	g.labelCounter = 0
	g.block = fn.NewBlock("entry")
	g.genStmts(quote.Body)
	g.block.NewRet(nil)

	g.enclosingFunc, g.block, g.labelCounter = outerFunc, outerBlock, outerLabels

	return fn
}

// internString returns the interned constant for a string literal, assigning
// the next `@str_N` name on first use.  Byte-identical literals share one
// constant.
func (g *Generator) internString(text string) *ir.Global {
	if glob, ok := g.strInterns[text]; ok {
		return glob
	}

	glob := g.mod.NewGlobalDef(fmt.Sprintf("str_%d", g.strCounter), constant.NewCharArrayFromString(text+"\x00"))
	g.strCounter++

	glob.Linkage = enum.LinkagePrivate
	glob.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	glob.Immutable = true

	g.strInterns[text] = glob
	return glob
}

// -----------------------------------------------------------------------------

// appendBlock adds a new basic block to the enclosing function.  It does *not*
// set the current block to this new block.  Blocks are appended in structural
// order: every branch targets a block created after its source.
func (g *Generator) appendBlock() *ir.Block {
	block := g.enclosingFunc.NewBlock(fmt.Sprintf("label_%d", g.labelCounter))
	g.labelCounter++
	return block
}

// charPtr returns an `i8*` to the first byte of a string constant.
func (g *Generator) charPtr(glob *ir.Global) value.Value {
	zero := constant.NewInt(types.I64, 0)
	return g.block.NewGetElementPtr(glob.ContentType, glob, zero, zero)
}
