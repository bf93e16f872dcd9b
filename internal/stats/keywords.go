package stats

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/zyedidia/generic/mapset"
)

// ErrBadKeywordExpr is returned for filter expressions that cannot be parsed.
var ErrBadKeywordExpr = errors.New("stats: malformed keyword expression")

// KeywordExpr is a compiled boolean query over keyword tags, such as
// "undead or flesh golem" or "goblinoid and not (hobgoblinoid or bugbearoid)".
// Keywords compare case-insensitively; consecutive words form one phrase.
type KeywordExpr interface {
	Match(keywords mapset.Set[string]) bool
	String() string
}

type phraseExpr string

func (p phraseExpr) Match(k mapset.Set[string]) bool { return k.Has(string(p)) }
func (p phraseExpr) String() string                  { return string(p) }

type notExpr struct{ inner KeywordExpr }

func (n notExpr) Match(k mapset.Set[string]) bool { return !n.inner.Match(k) }
func (n notExpr) String() string                  { return "NOT " + n.inner.String() }

type andExpr []KeywordExpr

func (a andExpr) Match(k mapset.Set[string]) bool {
	for _, e := range a {
		if !e.Match(k) {
			return false
		}
	}
	return true
}

func (a andExpr) String() string { return joinExprs(a, " AND ") }

type orExpr []KeywordExpr

func (o orExpr) Match(k mapset.Set[string]) bool {
	for _, e := range o {
		if e.Match(k) {
			return true
		}
	}
	return false
}

func (o orExpr) String() string { return joinExprs(o, " OR ") }

// matchAll is the empty filter
type matchAll struct{}

func (matchAll) Match(mapset.Set[string]) bool { return true }
func (matchAll) String() string                { return "" }

func joinExprs(exprs []KeywordExpr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// ParseKeywordExpr compiles a filter. AND binds tighter than OR, NOT binds
// tightest, and parentheses group. The empty string matches everything.
func ParseKeywordExpr(s string) (KeywordExpr, error) {
	tokens := tokenizeKeywords(s)
	if len(tokens) == 0 {
		return matchAll{}, nil
	}
	p := &keywordParser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadKeywordExpr, s, err)
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("%w: %q: unexpected %q", ErrBadKeywordExpr, s, p.tokens[p.pos])
	}
	return expr, nil
}

// MatchKeywords reports whether keywords satisfy the filter expression.
func MatchKeywords(expr string, keywords []string) (bool, error) {
	compiled, err := ParseKeywordExpr(expr)
	if err != nil {
		return false, err
	}
	return compiled.Match(KeywordSet(keywords)), nil
}

// KeywordSet normalizes keywords for matching.
func KeywordSet(keywords []string) mapset.Set[string] {
	set := mapset.New[string]()
	for _, k := range keywords {
		set.Put(normalizePhrase(k))
	}
	return set
}

func normalizePhrase(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// tokenizeKeywords splits on whitespace and parentheses and uppercases words
func tokenizeKeywords(s string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, strings.ToUpper(word.String()))
			word.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type keywordParser struct {
	tokens []string
	pos    int
}

func (p *keywordParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *keywordParser) parseOr() (KeywordExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []KeywordExpr{left}
	for p.peek() == "OR" {
		p.pos++
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return orExpr(terms), nil
}

func (p *keywordParser) parseAnd() (KeywordExpr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []KeywordExpr{left}
	for p.peek() == "AND" {
		p.pos++
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return andExpr(terms), nil
}

func (p *keywordParser) parseUnary() (KeywordExpr, error) {
	if p.peek() == "NOT" {
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{inner: inner}, nil
	}
	return p.parseAtom()
}

func (p *keywordParser) parseAtom() (KeywordExpr, error) {
	switch tok := p.peek(); tok {
	case "":
		return nil, errors.New("unexpected end of expression")
	case "(":
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, errors.New("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case ")", "AND", "OR":
		return nil, fmt.Errorf("unexpected %q", tok)
	}

	var words []string
	for {
		tok := p.peek()
		if tok == "" || tok == "(" || tok == ")" || tok == "AND" || tok == "OR" || tok == "NOT" {
			break
		}
		words = append(words, tok)
		p.pos++
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("unexpected %q", p.peek())
	}
	return phraseExpr(strings.Join(words, " ")), nil
}
