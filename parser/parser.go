// Package parser turns textual type descriptors like "array(bigint)" or
// "row(a bigint,b map(varchar,array(double)))" into type trees, resolving
// leaf names against a type registry.
package parser

import (
	"strconv"
	"strings"

	"github.com/querylab/typesig/registry"
	"github.com/querylab/typesig/types"
)

type Parser struct {
	Registry *registry.Registry
}

func New(reg *registry.Registry) *Parser {
	return &Parser{Registry: reg}
}

// ParseType parses the signature against the default registry.
func ParseType(signature string) (types.Type, error) {
	return New(registry.Default).ParseType(signature)
}

// ParseType parses a single complete type descriptor. The whole input must
// be consumed by exactly one type production. On failure no type is
// produced, the returned error is either a *SyntaxError or an
// *UnregisteredTypeError.
func (p *Parser) ParseType(signature string) (types.Type, error) {
	tokens, err := tokenize(signature)
	if err != nil {
		return types.Type{}, &SyntaxError{Input: signature}
	}

	c := &cursor{input: signature, tokens: tokens, registry: p.Registry}
	parsed, err := c.parseType()
	if err == nil && c.peek().kind != tokenEOF {
		err = c.syntaxError()
	}
	if err == nil {
		return parsed, nil
	}

	// A registered multi-word custom name has no grammar production of its
	// own, so the grammar walk above cannot consume it. It is still a valid
	// descriptor when it's the entire input.
	if _, ok := err.(*SyntaxError); ok {
		if custom, found := c.wholeInputMultiWord(); found {
			return custom, nil
		}
	}
	return types.Type{}, err
}

type cursor struct {
	input    string
	tokens   []token
	pos      int
	registry *registry.Registry
}

func (c *cursor) peek() token {
	return c.tokens[c.pos]
}

func (c *cursor) next() token {
	tok := c.tokens[c.pos]
	if tok.kind != tokenEOF {
		c.pos++
	}
	return tok
}

func (c *cursor) expect(kind tokenKind) (token, error) {
	if c.peek().kind != kind {
		return token{}, c.syntaxError()
	}
	return c.next(), nil
}

func (c *cursor) syntaxError() error {
	return &SyntaxError{Input: c.input}
}

// parseType matches the core Type production at the cursor.
func (c *cursor) parseType() (types.Type, error) {
	if c.peek().kind != tokenIdentifier {
		return types.Type{}, c.syntaxError()
	}

	if display, lookup, ok := c.matchMultiWord(); ok {
		return c.resolveLeaf(display, lookup)
	}

	word := c.next()
	switch strings.ToLower(word.text) {
	case "array":
		return c.parseArray()
	case "map":
		return c.parseMap()
	case "row":
		return c.parseRow()
	case "function":
		return c.parseFunction()
	case "decimal":
		return c.parseDecimal()
	case "varchar":
		return c.parseVarlen(types.Varchar)
	case "varbinary":
		return c.parseVarlen(types.Varbinary)
	}
	return c.resolveLeaf(word.text, strings.ToLower(word.text))
}

// matchMultiWord greedily extends the identifier at the cursor while the
// space-joined words remain a prefix of some multi-word grammar keyword.
// The longest exactly-matching keyword wins. The returned display string
// keeps the original token case, the lookup string is the canonical
// registry name the keyword resolves through.
func (c *cursor) matchMultiWord() (display string, lookup string, ok bool) {
	joined := strings.ToLower(c.tokens[c.pos].text)
	words := []string{c.tokens[c.pos].text}
	matched := 0

	for {
		if name, exact := multiWordTypes[joined]; exact {
			matched = len(words)
			lookup = name
		}
		next := c.tokens[c.pos+len(words)]
		if next.kind != tokenIdentifier {
			break
		}
		candidate := joined + " " + strings.ToLower(next.text)
		if !hasMultiWordPrefix(candidate) {
			break
		}
		joined = candidate
		words = append(words, next.text)
	}

	if matched < 2 {
		return "", "", false
	}
	c.pos += matched
	return strings.Join(words[:matched], " "), lookup, true
}

// resolveLeaf resolves a fully-matched type name through the registry.
// An unresolvable name is only reported as unregistered when it sits at a
// well-formed leaf position, i.e. the next token closes or separates an
// enclosing construct or ends the input. Otherwise (notably a following
// "(", for which no grammar production exists) the whole input failed.
func (c *cursor) resolveLeaf(display, lookup string) (types.Type, error) {
	resolved, ok := c.registry.Resolve(lookup)
	if !ok {
		switch c.peek().kind {
		case tokenComma, tokenRParen, tokenEOF:
			return types.Type{}, &UnregisteredTypeError{Name: display}
		default:
			return types.Type{}, c.syntaxError()
		}
	}
	return resolved, nil
}

func (c *cursor) parseArray() (types.Type, error) {
	if _, err := c.expect(tokenLParen); err != nil {
		return types.Type{}, err
	}
	element, err := c.parseType()
	if err != nil {
		return types.Type{}, err
	}
	if _, err := c.expect(tokenRParen); err != nil {
		return types.Type{}, err
	}
	return types.Array(element), nil
}

func (c *cursor) parseMap() (types.Type, error) {
	if _, err := c.expect(tokenLParen); err != nil {
		return types.Type{}, err
	}
	key, err := c.parseType()
	if err != nil {
		return types.Type{}, err
	}
	if _, err := c.expect(tokenComma); err != nil {
		return types.Type{}, err
	}
	value, err := c.parseType()
	if err != nil {
		return types.Type{}, err
	}
	if _, err := c.expect(tokenRParen); err != nil {
		return types.Type{}, err
	}
	return types.Map(key, value), nil
}

func (c *cursor) parseRow() (types.Type, error) {
	if _, err := c.expect(tokenLParen); err != nil {
		return types.Type{}, err
	}
	if c.peek().kind == tokenRParen {
		c.next()
		return types.Row(), nil
	}

	var fields []types.RowField
	for {
		field, err := c.parseRowField()
		if err != nil {
			return types.Type{}, err
		}
		fields = append(fields, field)

		switch c.peek().kind {
		case tokenComma:
			c.next()
		case tokenRParen:
			c.next()
			return types.Row(fields...), nil
		default:
			return types.Type{}, c.syntaxError()
		}
	}
}

// parseRowField parses "[FieldName] Type". Whether the leading identifier
// is a field name or the start of the type is decided structurally from
// the field's token span, without backtracking.
func (c *cursor) parseRowField() (types.RowField, error) {
	switch c.peek().kind {
	case tokenQuotedIdentifier:
		name := c.next()
		fieldType, err := c.parseType()
		if err != nil {
			return types.RowField{}, err
		}
		return types.Field(name.text, fieldType), nil
	case tokenIdentifier:
	default:
		return types.RowField{}, c.syntaxError()
	}

	if c.fieldIsNamed() {
		name := c.next()
		fieldType, err := c.parseType()
		if err != nil {
			return types.RowField{}, err
		}
		return types.Field(name.text, fieldType), nil
	}

	fieldType, err := c.parseType()
	if err != nil {
		return types.RowField{}, err
	}
	return types.RowField{Type: fieldType}, nil
}

// fieldIsNamed inspects the field's token span, which runs to the next
// comma or closing parenthesis at nesting depth zero. A single token, a
// parameterized type (second token is "(") and a span that is exactly a
// multi-word grammar keyword are anonymous, anything else is a named
// field.
func (c *cursor) fieldIsNamed() bool {
	end := c.pos
	depth := 0
spanLoop:
	for ; ; end++ {
		switch c.tokens[end].kind {
		case tokenLParen:
			depth++
		case tokenRParen:
			if depth == 0 {
				break spanLoop
			}
			depth--
		case tokenComma:
			if depth == 0 {
				break spanLoop
			}
		case tokenEOF:
			break spanLoop
		}
	}

	span := c.tokens[c.pos:end]
	if len(span) < 2 {
		return false
	}
	if span[1].kind == tokenLParen {
		return false
	}

	words := make([]string, 0, len(span))
	for _, tok := range span {
		if tok.kind != tokenIdentifier {
			return true
		}
		words = append(words, strings.ToLower(tok.text))
	}
	_, wholeSpanIsKeyword := multiWordTypes[strings.Join(words, " ")]
	return !wholeSpanIsKeyword
}

func (c *cursor) parseFunction() (types.Type, error) {
	if _, err := c.expect(tokenLParen); err != nil {
		return types.Type{}, err
	}

	var elements []types.Type
	for {
		element, err := c.parseType()
		if err != nil {
			return types.Type{}, err
		}
		elements = append(elements, element)

		switch c.peek().kind {
		case tokenComma:
			c.next()
		case tokenRParen:
			c.next()
			// The last element is the return type.
			return types.Function(elements[:len(elements)-1], elements[len(elements)-1]), nil
		default:
			return types.Type{}, c.syntaxError()
		}
	}
}

func (c *cursor) parseDecimal() (types.Type, error) {
	if _, err := c.expect(tokenLParen); err != nil {
		return types.Type{}, err
	}
	precision, err := c.parseIntegerLiteral()
	if err != nil {
		return types.Type{}, err
	}
	if _, err := c.expect(tokenComma); err != nil {
		return types.Type{}, err
	}
	scale, err := c.parseIntegerLiteral()
	if err != nil {
		return types.Type{}, err
	}
	if _, err := c.expect(tokenRParen); err != nil {
		return types.Type{}, err
	}
	return types.Decimal(precision, scale), nil
}

// parseVarlen handles varchar/varbinary with an optional length parameter.
// The length is syntactically accepted and discarded, the canonical types
// carry no length.
func (c *cursor) parseVarlen(base types.Type) (types.Type, error) {
	if c.peek().kind != tokenLParen {
		return base, nil
	}
	c.next()
	if _, err := c.parseIntegerLiteral(); err != nil {
		return types.Type{}, err
	}
	if _, err := c.expect(tokenRParen); err != nil {
		return types.Type{}, err
	}
	return base, nil
}

func (c *cursor) parseIntegerLiteral() (int, error) {
	tok, err := c.expect(tokenInteger)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, c.syntaxError()
	}
	return value, nil
}

// wholeInputMultiWord resolves the entire input as one registered
// multi-word custom name, when it has that shape.
func (c *cursor) wholeInputMultiWord() (types.Type, bool) {
	var words []string
	for _, tok := range c.tokens {
		if tok.kind == tokenEOF {
			break
		}
		if tok.kind != tokenIdentifier {
			return types.Type{}, false
		}
		words = append(words, tok.text)
	}
	if len(words) < 2 {
		return types.Type{}, false
	}

	name := strings.Join(words, " ")
	if !c.registry.IsRegisteredMultiWord(name) {
		return types.Type{}, false
	}
	return c.registry.Resolve(name)
}
