package syntax

import (
	"bufio"
	"strconv"

	"falsec/ast"
	"falsec/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a FALSE source file.  It is a recursive descent
// parser consuming the lexer's stream with one token of lookahead: all parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens (including the last) of
// their production, leaving the parser on the next token.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token
}

// NewParser creates a new parser over the given source reader.
func NewParser(r *bufio.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse parses a whole program and returns its top-level statement sequence.
func (p *Parser) Parse() ([]ast.Node, error) {
	// move the parser onto the first token
	if err := p.next(); err != nil {
		return nil, err
	}

	// program = {statement}
	// A close bracket at the outermost depth terminates the program.
	return p.parseStmtSeq()
}

// -----------------------------------------------------------------------------

// opKinds maps payload-free token kinds to their AST operation kind.
var opKinds = map[int]ast.OpKind{
	TOK_GETVAR:   ast.OpGetVar,
	TOK_SETVAR:   ast.OpSetVar,
	TOK_DUP:      ast.OpDup,
	TOK_DISCARD:  ast.OpDiscard,
	TOK_SWAP:     ast.OpSwap,
	TOK_ROT:      ast.OpRotate,
	TOK_TAKE:     ast.OpTake,
	TOK_PLUS:     ast.OpPlus,
	TOK_MINUS:    ast.OpMinus,
	TOK_STAR:     ast.OpMul,
	TOK_DIV:      ast.OpDiv,
	TOK_NEG:      ast.OpNegate,
	TOK_BWAND:    ast.OpBitAnd,
	TOK_BWOR:     ast.OpBitOr,
	TOK_COMPL:    ast.OpBitInvert,
	TOK_EQ:       ast.OpEqual,
	TOK_GT:       ast.OpGreaterThan,
	TOK_EXEC:     ast.OpExecute,
	TOK_EXECIF:   ast.OpExecuteIf,
	TOK_WHILE:    ast.OpWhile,
	TOK_GETC:     ast.OpGetc,
	TOK_PUTC:     ast.OpPutc,
	TOK_PRINTINT: ast.OpPrintInt,
}

// parseStmtSeq parses a statement sequence.  It stops on a close bracket or
// the end of input, leaving the parser positioned on the terminating token.
//
// stmt_seq = {statement}
// statement = atom | quote
func (p *Parser) parseStmtSeq() ([]ast.Node, error) {
	var stmts []ast.Node

	for {
		switch p.tok.Kind {
		case TOK_EOF, TOK_RBRACKET:
			return stmts, nil
		case TOK_LBRACKET:
			quote, err := p.parseQuote()
			if err != nil {
				return nil, err
			}

			stmts = append(stmts, quote)
		case TOK_FLUSH:
			// Flush is recognized and discarded: no AST node is emitted.
			if err := p.next(); err != nil {
				return nil, err
			}
		case TOK_ASM:
			return nil, p.parseAsm()
		default:
			atom, err := p.parseAtom()
			if err != nil {
				return nil, err
			}

			stmts = append(stmts, atom)
		}
	}
}

// parseQuote parses a quotation.
//
// quote = '[' stmt_seq ']'
func (p *Parser) parseQuote() (ast.Node, error) {
	openTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	body, err := p.parseStmtSeq()
	if err != nil {
		return nil, err
	}

	if p.tok.Kind != TOK_RBRACKET {
		return nil, report.Raise(p.tok.Span, "unexpected end of file")
	}

	closeTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	return &ast.Quote{
		NodeBase: ast.NewNodeBaseOver(openTok.Span, closeTok.Span),
		Body:     body,
	}, nil
}

// parseAtom parses a single non-quote statement.
//
// atom = VARIABLE | STRING | INTEGER | operation
func (p *Parser) parseAtom() (ast.Node, error) {
	tok := p.tok

	var node ast.Node
	switch tok.Kind {
	case TOK_VARIABLE:
		node = &ast.Variable{
			NodeBase: ast.NewNodeBaseOn(tok.Span),
			Name:     rune(tok.Value[0]),
		}
	case TOK_STRINGLIT:
		node = &ast.StringLit{
			NodeBase: ast.NewNodeBaseOn(tok.Span),
			Value:    tok.Value,
		}
	case TOK_INTLIT:
		value, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			return nil, report.Raise(tok.Span, "invalid integer literal: %s", tok.Value)
		}

		node = &ast.IntLit{
			NodeBase: ast.NewNodeBaseOn(tok.Span),
			Value:    int32(value),
		}
	default:
		kind, ok := opKinds[tok.Kind]
		if !ok {
			return nil, report.Raise(tok.Span, "unexpected token: `%s`", tok.Value)
		}

		node = &ast.Op{
			NodeBase: ast.NewNodeBaseOn(tok.Span),
			Kind:     kind,
		}
	}

	return node, p.next()
}

// parseAsm parses the inline assembly form so it can be rejected.  The
// backtick must be followed by an integer literal.
//
// asm = '`' INTEGER
func (p *Parser) parseAsm() error {
	asmTok := p.tok
	if err := p.next(); err != nil {
		return err
	}

	if p.tok.Kind != TOK_INTLIT {
		return report.Raise(p.tok.Span, "syntax error: expected a short")
	}

	return report.Raise(report.NewSpanOver(asmTok.Span, p.tok.Span), "assembly not supported")
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}
