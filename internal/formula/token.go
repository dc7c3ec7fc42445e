package formula

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// tokenKind identifies the lexical class of a token.
type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenCaret
	tokenLParen
	tokenRParen
	tokenEOF
)

// token is a single lexical unit of a formula.
type token struct {
	kind  tokenKind
	text  string
	value float64 // populated for tokenNumber
	pos   int     // byte offset in the source, for error messages
}

// tokenize splits a formula into tokens. Whitespace is ignored.
// Numbers accept an optional fractional part and exponent
// (e.g. "12", "0.5", "1.2e-3"). Identifiers follow the usual
// [a-zA-Z_][a-zA-Z0-9_]* shape.
func tokenize(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokenPlus, text: "+", pos: i})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokenMinus, text: "-", pos: i})
			i++
		case c == '*':
			tokens = append(tokens, token{kind: tokenStar, text: "*", pos: i})
			i++
		case c == '/':
			tokens = append(tokens, token{kind: tokenSlash, text: "/", pos: i})
			i++
		case c == '^':
			tokens = append(tokens, token{kind: tokenCaret, text: "^", pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case c >= '0' && c <= '9' || c == '.':
			tok, next, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case isIdentStart(rune(c)):
			start := i
			for i < len(src) && isIdentPart(rune(src[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: src[start:i], pos: start})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", string(c), i)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(src)})
	return tokens, nil
}

// lexNumber scans a decimal number starting at offset start.
// Returns the token and the offset just past the number.
func lexNumber(src string, start int) (token, int, error) {
	i := start
	for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
		i++
	}
	// Optional exponent: e/E, optional sign, then digits.
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && src[j] >= '0' && src[j] <= '9' {
			for j < len(src) && src[j] >= '0' && src[j] <= '9' {
				j++
			}
			i = j
		}
	}
	text := src[start:i]
	if strings.Count(text, ".") > 1 || text == "." {
		return token{}, 0, fmt.Errorf("malformed number %q at position %d", text, start)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, 0, fmt.Errorf("malformed number %q at position %d", text, start)
	}
	return token{kind: tokenNumber, text: text, value: v, pos: start}, i, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) && r < 128
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || r >= '0' && r <= '9'
}
