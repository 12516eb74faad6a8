// Package selector decides which element handlers apply to a start tag.
//
// It is deliberately small: selectors match on the tag name, on attribute
// presence, or on a boolean expr-lang expression over the tag, e.g.
//
//	name == "a" && has("href") && attr("rel") != "nofollow"
package selector

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Target is the view of a start tag a selector gets to see.
type Target interface {
	TagName() string
	Attribute(name string) (string, bool)
}

type Selector interface {
	Match(t Target) bool
}

// Func adapts a function to a Selector.
type Func func(t Target) bool

func (f Func) Match(t Target) bool { return f(t) }

// Any matches every element.
func Any() Selector {
	return Func(func(Target) bool { return true })
}

// Name matches elements with any of the given tag names, ignoring ASCII case.
func Name(names ...string) Selector {
	return Func(func(t Target) bool {
		tn := t.TagName()
		for _, n := range names {
			if strings.EqualFold(n, tn) {
				return true
			}
		}
		return false
	})
}

// HasAttr matches elements carrying the attribute name.
func HasAttr(name string) Selector {
	return Func(func(t Target) bool {
		_, ok := t.Attribute(name)
		return ok
	})
}

// All matches when every one of sels matches.
func All(sels ...Selector) Selector {
	return Func(func(t Target) bool {
		for _, s := range sels {
			if !s.Match(t) {
				return false
			}
		}
		return true
	})
}

type exprSelector struct {
	src string
	prg *vm.Program
}

// Expr compiles a boolean expression. The expression sees
//
//	name        the lowercased tag name
//	attr(n)     the value of attribute n, "" when absent
//	has(n)      whether attribute n is present
//
// An expression failing at run time does not match.
func Expr(src string) (Selector, error) {
	prg, err := expr.Compile(src, expr.Env(exprEnv(nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrExpr, src, err)
	}
	return &exprSelector{src: src, prg: prg}, nil
}

func (s *exprSelector) Match(t Target) bool {
	out, err := expr.Run(s.prg, exprEnv(t))
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

func (s *exprSelector) String() string {
	return s.src
}

func exprEnv(t Target) map[string]any {
	name := ""
	if t != nil {
		name = t.TagName()
	}
	return map[string]any{
		"name": name,
		"attr": func(n string) string {
			if t == nil {
				return ""
			}
			v, _ := t.Attribute(n)
			return v
		},
		"has": func(n string) bool {
			if t == nil {
				return false
			}
			_, ok := t.Attribute(n)
			return ok
		},
	}
}
