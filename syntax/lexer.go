package syntax

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"falsec/report"
)

// Lexer is responsible for tokenizing a FALSE source file.  It is a pull-driven
// scanner: each call to NextToken advances it by exactly one token.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source reader.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the input file.  If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '{':
			if err := l.skipComment(); err != nil {
				return nil, err
			}
		case '\'':
			return l.lexCharLit()
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexIntLit()
			} else if isVariableChar(c) {
				return l.lexVariable()
			} else {
				return l.lexSymbol()
			}
		}
	}

	return &Token{Kind: TOK_EOF, Span: l.getSpan()}, nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol runes (patterns) to their operation token kind.
// Every FALSE operation is a single byte.
var symbolPatterns = map[rune]int{
	'[': TOK_LBRACKET,
	']': TOK_RBRACKET,

	';': TOK_GETVAR,
	':': TOK_SETVAR,

	'$':  TOK_DUP,
	'%':  TOK_DISCARD,
	'\\': TOK_SWAP,
	'@':  TOK_ROT,
	'O':  TOK_TAKE,

	'+': TOK_PLUS,
	'-': TOK_MINUS,
	'*': TOK_STAR,
	'/': TOK_DIV,
	'_': TOK_NEG,

	'&': TOK_BWAND,
	'|': TOK_BWOR,
	'~': TOK_COMPL,

	'=': TOK_EQ,
	'>': TOK_GT,

	'!': TOK_EXEC,
	'?': TOK_EXECIF,
	'#': TOK_WHILE,

	'^': TOK_GETC,
	',': TOK_PUTC,
	'.': TOK_PRINTINT,

	'B': TOK_FLUSH,
	'`': TOK_ASM,
}

// lexSymbol lexes a single-byte operation symbol.
func (l *Lexer) lexSymbol() (*Token, error) {
	l.mark()

	c, err := l.eat()
	if err != nil {
		return nil, err
	}

	kind, ok := symbolPatterns[c]
	if !ok {
		return nil, report.Raise(l.getSpan(), "invalid character: %c", c)
	}

	return l.makeToken(kind), nil
}

// lexVariable lexes a one-letter variable name.
func (l *Lexer) lexVariable() (*Token, error) {
	l.mark()

	if _, err := l.eat(); err != nil {
		return nil, err
	}

	return l.makeToken(TOK_VARIABLE), nil
}

// -----------------------------------------------------------------------------

// lexIntLit lexes a run of decimal digits as a non-negative integer literal.
func (l *Lexer) lexIntLit() (*Token, error) {
	l.mark()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	return l.makeToken(TOK_INTLIT), nil
}

// lexCharLit lexes a character literal: a `'` followed by exactly one
// character, read as one UTF-8-decoded rune.  The literal is folded to an
// integer token holding that rune's code point.
func (l *Lexer) lexCharLit() (*Token, error) {
	l.mark()
	l.skip()

	c, err := l.skip()
	if err != nil {
		return nil, err
	} else if c == -1 {
		return nil, report.Raise(l.getSpan(), "expected a character")
	}

	tok := l.makeToken(TOK_INTLIT)
	tok.Value = strconv.Itoa(int(c))
	return tok, nil
}

// lexStringLit lexes a string literal.  FALSE strings have no escape
// sequences: the payload is the raw bytes between the quote delimiters.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1:
			return nil, report.Raise(l.getSpan(), "expected \"")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT), nil
		default:
			l.eat()
		}
	}
}

// -----------------------------------------------------------------------------

// skipComment skips a `{ ... }` comment.  Comments do not nest.
func (l *Lexer) skipComment() error {
	l.mark()
	l.skip()

	for {
		c, err := l.skip()
		if err != nil {
			return err
		}

		switch c {
		case -1:
			return report.Raise(l.getSpan(), "unclosed comment")
		case '}':
			return nil
		}
	}
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as the rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on the input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isVariableChar returns whether c names one of the 26 variable cells.
func isVariableChar(c rune) bool {
	return 'a' <= c && c <= 'z'
}
