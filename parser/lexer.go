package parser

import "fmt"

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdentifier
	tokenQuotedIdentifier
	tokenInteger
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind tokenKind
	// text is the identifier or literal text. For quoted identifiers it's
	// the unescaped content between the quotes.
	text  string
	start int
	end   int
}

type lexicalError struct {
	offset int
}

func (e *lexicalError) Error() string {
	return fmt.Sprintf("unexpected character at offset %d", e.offset)
}

// tokenize converts the signature into a token slice terminated by an EOF
// token. Byte offsets are recorded for diagnostics.
func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", start: i, end: i + 1})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", start: i, end: i + 1})
			i++
		case c == ',':
			tokens = append(tokens, token{kind: tokenComma, text: ",", start: i, end: i + 1})
			i++
		case isIdentifierStart(c):
			start := i
			for i < len(input) && isIdentifierPart(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdentifier, text: input[start:i], start: start, end: i})
		case c >= '0' && c <= '9':
			start := i
			for i < len(input) && input[i] >= '0' && input[i] <= '9' {
				i++
			}
			tokens = append(tokens, token{kind: tokenInteger, text: input[start:i], start: start, end: i})
		case c == '"':
			start := i
			text, end, ok := scanQuoted(input, i)
			if !ok {
				return nil, &lexicalError{offset: i}
			}
			tokens = append(tokens, token{kind: tokenQuotedIdentifier, text: text, start: start, end: end})
			i = end
		default:
			return nil, &lexicalError{offset: i}
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, start: len(input), end: len(input)})
	return tokens, nil
}

// scanQuoted scans a quoted identifier starting at the opening quote.
// Doubled quotes inside are unescaped into a single literal quote.
func scanQuoted(input string, start int) (text string, end int, ok bool) {
	var out []byte
	i := start + 1
	for i < len(input) {
		c := input[i]
		if c != '"' {
			out = append(out, c)
			i++
			continue
		}
		if i+1 < len(input) && input[i+1] == '"' {
			out = append(out, '"')
			i += 2
			continue
		}
		return string(out), i + 1, true
	}
	return "", 0, false
}

func isIdentifierStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentifierPart(c byte) bool {
	return isIdentifierStart(c) || c >= '0' && c <= '9'
}
