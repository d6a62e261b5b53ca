package zygo

import (
	"errors"
	"fmt"
	"strconv"
)

// Parser reads tokens into forms. Special-form names are read as their
// SexpSpecial tag rather than as symbols.
type Parser struct {
	env    *Zlisp
	tokens []Token
	pos    int
}

func (env *Zlisp) NewParser() *Parser {
	return &Parser{env: env}
}

type MoreInputError struct{}

func (e *MoreInputError) Error() string {
	return "parser needs more input"
}

// ErrMoreInputNeeded reports input that ends inside an open form or
// string. The REPL answers it by reading another line.
var ErrMoreInputNeeded = &MoreInputError{}

var UnexpectedEnd error = errors.New("Unexpected end of input")

// ParseString reads every form in src.
func (parser *Parser) ParseString(src string) ([]Sexp, error) {
	lexer := NewLexer()
	if err := lexer.LexString(src); err != nil {
		return nil, err
	}
	parser.tokens = lexer.Tokens()
	parser.pos = 0
	Q("parsing tokens: %s", tokensString(parser.tokens))

	var forms []Sexp
	for parser.pos < len(parser.tokens) {
		expr, err := parser.ParseExpression(0)
		if err != nil {
			return nil, err
		}
		forms = append(forms, expr)
	}
	return forms, nil
}

func (parser *Parser) next() Token {
	if parser.pos >= len(parser.tokens) {
		return EndTk
	}
	tok := parser.tokens[parser.pos]
	parser.pos++
	return tok
}

func (parser *Parser) peek() Token {
	if parser.pos >= len(parser.tokens) {
		return EndTk
	}
	return parser.tokens[parser.pos]
}

// parseSeq reads forms up to the closing token.
func (parser *Parser) parseSeq(depth int, end TokenType) ([]Sexp, error) {
	var elems []Sexp
	for {
		tok := parser.peek()
		switch tok.typ {
		case TokenEnd:
			return nil, ErrMoreInputNeeded
		case end:
			parser.next()
			return elems, nil
		}
		expr, err := parser.ParseExpression(depth + 1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, expr)
	}
}

func (parser *Parser) ParseExpression(depth int) (Sexp, error) {
	env := parser.env
	tok := parser.next()
	switch tok.typ {
	case TokenEnd:
		return SexpEnd, UnexpectedEnd
	case TokenLParen:
		elems, err := parser.parseSeq(depth, TokenRParen)
		if err != nil {
			return SexpNull, err
		}
		return MakeList(elems), nil
	case TokenLSquare:
		elems, err := parser.parseSeq(depth, TokenRSquare)
		if err != nil {
			return SexpNull, err
		}
		if elems == nil {
			elems = []Sexp{}
		}
		return &SexpArray{Val: elems}, nil
	case TokenLCurly:
		elems, err := parser.parseSeq(depth, TokenRCurly)
		if err != nil {
			return SexpNull, err
		}
		hash, err := MakeHash(NewParams(elems...))
		if err != nil {
			return SexpNull, fmt.Errorf("line %d: %v", tok.linenum, err)
		}
		return hash, nil
	case TokenRParen, TokenRSquare, TokenRCurly:
		return SexpNull, fmt.Errorf("line %d: unexpected '%s'", tok.linenum, tok)
	case TokenQuote:
		if parser.peek().typ == TokenEnd {
			return SexpNull, ErrMoreInputNeeded
		}
		expr, err := parser.ParseExpression(depth + 1)
		if err != nil {
			return SexpNull, err
		}
		return MakeList([]Sexp{SpecialQuote, expr}), nil
	case TokenSymbol:
		if sp, ok := LookupSpecial(tok.str); ok {
			return sp, nil
		}
		return env.MakeSymbol(tok.str), nil
	case TokenNil:
		return SexpNull, nil
	case TokenBool:
		return &SexpBool{Val: tok.str == "true"}, nil
	case TokenDecimal:
		i, err := strconv.ParseInt(tok.str, 10, 64)
		if err != nil {
			return SexpNull, fmt.Errorf("line %d: %v", tok.linenum, err)
		}
		return &SexpInt{Val: i}, nil
	case TokenFloat:
		f, err := strconv.ParseFloat(tok.str, 64)
		if err != nil {
			return SexpNull, fmt.Errorf("line %d: %v", tok.linenum, err)
		}
		return &SexpFloat{Val: f}, nil
	case TokenString:
		return &SexpStr{S: tok.str}, nil
	}
	return SexpNull, fmt.Errorf("line %d: unexpected token '%s'", tok.linenum, tok)
}
