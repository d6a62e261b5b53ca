package zygo

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type TokenType int

const (
	TokenTypeEmpty TokenType = iota
	TokenLParen
	TokenRParen
	TokenLSquare
	TokenRSquare
	TokenLCurly
	TokenRCurly
	TokenQuote
	TokenSymbol
	TokenBool
	TokenNil
	TokenDecimal
	TokenFloat
	TokenString
	TokenEnd
)

type Token struct {
	typ     TokenType
	str     string
	linenum int
}

var EndTk = Token{typ: TokenEnd}

func (t Token) String() string {
	switch t.typ {
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenLSquare:
		return "["
	case TokenRSquare:
		return "]"
	case TokenLCurly:
		return "{"
	case TokenRCurly:
		return "}"
	case TokenQuote:
		return "'"
	case TokenString:
		return fmt.Sprintf("%q", t.str)
	case TokenEnd:
		return "End"
	}
	return t.str
}

type LexerState int

const (
	LexerNormal LexerState = iota
	LexerCommentLine
	LexerStrLit
	LexerStrEscaped
)

// Lexer turns source text into tokens. A string literal still open at
// the end of input leaves the lexer in LexerStrLit.
type Lexer struct {
	state   LexerState
	tokens  []Token
	buffer  *bytes.Buffer
	linenum int
}

func NewLexer() *Lexer {
	return &Lexer{
		buffer:  new(bytes.Buffer),
		linenum: 1,
	}
}

func (lexer *Lexer) Linenum() int {
	return lexer.linenum
}

func (lexer *Lexer) Token(typ TokenType, str string) Token {
	return Token{typ: typ, str: str, linenum: lexer.linenum}
}

func (lexer *Lexer) AppendToken(tok Token) {
	lexer.tokens = append(lexer.tokens, tok)
}

var (
	BoolRegex    = regexp.MustCompile("^(true|false)$")
	DecimalRegex = regexp.MustCompile("^-?[0-9]+$")
	FloatRegex   = regexp.MustCompile("^-?([0-9]+\\.[0-9]*)$|^-?(\\.[0-9]+)$|^-?([0-9]+(\\.[0-9]*)?[eE](-?[0-9]+))$")

	// Symbols cannot start with a digit, nor contain whitespace,
	// quotes, brackets or `;`.
	SymbolRegex = regexp.MustCompile(`^[^\s'"();\[\]{}0-9][^\s'"();\[\]{}]*$`)
)

func EscapeChar(char rune) (rune, error) {
	switch char {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	}
	return ' ', errors.New("invalid escape sequence")
}

func (lexer *Lexer) DecodeAtom(atom string) (Token, error) {
	if atom == "nil" {
		return lexer.Token(TokenNil, atom), nil
	}
	if BoolRegex.MatchString(atom) {
		return lexer.Token(TokenBool, atom), nil
	}
	if DecimalRegex.MatchString(atom) {
		return lexer.Token(TokenDecimal, atom), nil
	}
	if FloatRegex.MatchString(atom) {
		return lexer.Token(TokenFloat, atom), nil
	}
	if SymbolRegex.MatchString(atom) {
		return lexer.Token(TokenSymbol, atom), nil
	}
	return EndTk, fmt.Errorf("line %d: unrecognized atom: '%s'", lexer.linenum, atom)
}

func (lexer *Lexer) dumpBuffer() error {
	if lexer.buffer.Len() == 0 {
		return nil
	}
	tok, err := lexer.DecodeAtom(lexer.buffer.String())
	lexer.buffer.Reset()
	if err != nil {
		return err
	}
	lexer.AppendToken(tok)
	return nil
}

func (lexer *Lexer) dumpString() {
	lexer.AppendToken(lexer.Token(TokenString, lexer.buffer.String()))
	lexer.buffer.Reset()
}

func (lexer *Lexer) DecodeBrace(brace rune) Token {
	switch brace {
	case '(':
		return lexer.Token(TokenLParen, "")
	case ')':
		return lexer.Token(TokenRParen, "")
	case '[':
		return lexer.Token(TokenLSquare, "")
	case ']':
		return lexer.Token(TokenRSquare, "")
	case '{':
		return lexer.Token(TokenLCurly, "")
	case '}':
		return lexer.Token(TokenRCurly, "")
	}
	return EndTk
}

func (lexer *Lexer) LexNextRune(r rune) error {
	switch lexer.state {
	case LexerCommentLine:
		if r == '\n' {
			lexer.linenum++
			lexer.state = LexerNormal
		}
		return nil

	case LexerStrEscaped:
		char, err := EscapeChar(r)
		if err != nil {
			return fmt.Errorf("line %d: %v '\\%c'", lexer.linenum, err, r)
		}
		lexer.buffer.WriteRune(char)
		lexer.state = LexerStrLit
		return nil

	case LexerStrLit:
		switch r {
		case '\\':
			lexer.state = LexerStrEscaped
		case '"':
			lexer.dumpString()
			lexer.state = LexerNormal
		default:
			if r == '\n' {
				lexer.linenum++
			}
			lexer.buffer.WriteRune(r)
		}
		return nil
	}

	switch r {
	case '"':
		if err := lexer.dumpBuffer(); err != nil {
			return err
		}
		lexer.state = LexerStrLit
		return nil
	case ';':
		lexer.state = LexerCommentLine
		return lexer.dumpBuffer()
	case '\'':
		if lexer.buffer.Len() > 0 {
			return fmt.Errorf("line %d: quote inside atom '%s'", lexer.linenum, lexer.buffer.String())
		}
		lexer.AppendToken(lexer.Token(TokenQuote, ""))
		return nil
	case '(', ')', '[', ']', '{', '}':
		if err := lexer.dumpBuffer(); err != nil {
			return err
		}
		lexer.AppendToken(lexer.DecodeBrace(r))
		return nil
	case ' ', '\t', '\r', ',':
		return lexer.dumpBuffer()
	case '\n':
		err := lexer.dumpBuffer()
		lexer.linenum++
		return err
	}
	lexer.buffer.WriteRune(r)
	return nil
}

// LexString tokenizes all of src. Commas count as whitespace.
func (lexer *Lexer) LexString(src string) error {
	for _, r := range src {
		if err := lexer.LexNextRune(r); err != nil {
			return err
		}
	}
	switch lexer.state {
	case LexerStrLit, LexerStrEscaped:
		return ErrMoreInputNeeded
	case LexerCommentLine:
		lexer.state = LexerNormal
	}
	return lexer.dumpBuffer()
}

func (lexer *Lexer) Tokens() []Token {
	return lexer.tokens
}

func tokensString(toks []Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
