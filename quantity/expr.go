/*
Copyright © 2021 the Gasify authors.
This file is part of Gasify.

Gasify is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Gasify is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Gasify.  If not, see <http://www.gnu.org/licenses/>.
*/

package quantity

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/golang/groupcache/lru"
)

// exprCacheSize is the number of parsed unit expressions kept in memory.
const exprCacheSize = 512

var exprCache = struct {
	sync.Mutex
	c *lru.Cache
}{c: lru.New(exprCacheSize)}

// parseExpr parses a unit expression such as "g/m^3", "J/(g K)" or
// "cal / g". Whitespace between two units means multiplication and
// "**" may be used in place of "^". An empty expression is dimensionless.
func parseExpr(s string) (*Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimensionless, nil
	}

	exprCache.Lock()
	v, ok := exprCache.c.Get(s)
	exprCache.Unlock()
	if ok {
		return v.(*Unit), nil
	}

	toks, err := tokenize(superscripts.Replace(s))
	if err != nil {
		return nil, err
	}
	p := &exprParser{src: s, toks: toks}
	u, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("quantity: unexpected %q in unit %q: %w", p.peek().text, s, ErrParse)
	}
	if u == nil {
		u = Dimensionless
	}

	exprCache.Lock()
	exprCache.c.Add(s, u)
	exprCache.Unlock()
	return u, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokMul
	tokDiv
	tokPow
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

var superscripts = strings.NewReplacer("⁻", "^-", "¹", "^1", "²", "^2", "³", "^3", "⁴", "^4")

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '°' || r == '%'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func tokenize(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{tokPow, "**"})
			i += 2
		case r == '*' || r == '·':
			toks = append(toks, token{tokMul, string(r)})
			i++
		case r == '/':
			toks = append(toks, token{tokDiv, "/"})
			i++
		case r == '^':
			toks = append(toks, token{tokPow, "^"})
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case r == '%':
			toks = append(toks, token{tokIdent, "%"})
			i++
		case unicode.IsDigit(r) || r == '-' || r == '+':
			j := i + 1
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			toks = append(toks, token{tokNumber, string(rs[i:j])})
			i = j
		case isIdentStart(r):
			j := i + 1
			for j < len(rs) && isIdentPart(rs[j]) {
				j++
			}
			toks = append(toks, token{tokIdent, string(rs[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("quantity: invalid character %q in unit %q: %w", r, s, ErrParse)
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

type exprParser struct {
	src  string
	toks []token
	pos  int
}

func (p *exprParser) peek() token { return p.toks[p.pos] }

func (p *exprParser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// expr = power { ("*" | "/" | implicit) power }
func (p *exprParser) expr() (*Unit, error) {
	u, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokMul:
			p.next()
			o, err := p.power()
			if err != nil {
				return nil, err
			}
			u = u.Mul(o)
		case tokDiv:
			p.next()
			o, err := p.power()
			if err != nil {
				return nil, err
			}
			u = u.Div(o)
		case tokIdent, tokLParen:
			o, err := p.power()
			if err != nil {
				return nil, err
			}
			u = u.Mul(o)
		default:
			return u, nil
		}
	}
}

// power = primary [ ("^" | "**") integer ]
func (p *exprParser) power() (*Unit, error) {
	u, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return u, nil
	}
	p.next()
	t := p.next()
	if t.kind != tokNumber {
		return nil, fmt.Errorf("quantity: expected integer power in unit %q: %w", p.src, ErrParse)
	}
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return nil, fmt.Errorf("quantity: invalid power %q in unit %q: %w", t.text, p.src, ErrParse)
	}
	return u.Pow(n), nil
}

// primary = ident | "1" | "(" expr ")"
func (p *exprParser) primary() (*Unit, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		return Lookup(t.text)
	case tokNumber:
		if t.text != "1" {
			return nil, fmt.Errorf("quantity: scaled unit %q in %q is not supported: %w", t.text, p.src, ErrParse)
		}
		return nil, nil
	case tokLParen:
		u, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, fmt.Errorf("quantity: missing ')' in unit %q: %w", p.src, ErrParse)
		}
		return u, nil
	}
	return nil, fmt.Errorf("quantity: unexpected %q in unit %q: %w", t.text, p.src, ErrParse)
}
