package selector

import (
	"errors"
	"strings"
	"testing"
)

type tag struct {
	name  string
	attrs map[string]string
}

func (t *tag) TagName() string { return t.name }

func (t *tag) Attribute(name string) (string, bool) {
	v, ok := t.attrs[strings.ToLower(name)]
	return v, ok
}

func TestSelectors(t *testing.T) {
	a := &tag{name: "a", attrs: map[string]string{"href": "/x", "rel": "nofollow"}}
	img := &tag{name: "img", attrs: map[string]string{"src": "i.png"}}

	mustExpr := func(src string) Selector {
		s, err := Expr(src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return s
	}

	tests := []struct {
		name string
		sel  Selector
		a    bool
		img  bool
	}{
		{name: "any", sel: Any(), a: true, img: true},
		{name: "name", sel: Name("IMG"), a: false, img: true},
		{name: "names", sel: Name("a", "img"), a: true, img: true},
		{name: "hasattr", sel: HasAttr("href"), a: true, img: false},
		{name: "all", sel: All(Name("a"), HasAttr("src")), a: false, img: false},
		{name: "expr name", sel: mustExpr(`name == "a"`), a: true, img: false},
		{name: "expr has", sel: mustExpr(`has("src") && attr("src") endsWith ".png"`), a: false, img: true},
		{name: "expr attr", sel: mustExpr(`attr("rel") != "nofollow"`), a: false, img: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Match(a); got != tt.a {
				t.Errorf("a: expected %v, got %v", tt.a, got)
			}
			if got := tt.sel.Match(img); got != tt.img {
				t.Errorf("img: expected %v, got %v", tt.img, got)
			}
		})
	}
}

func TestExprErrors(t *testing.T) {
	for _, src := range []string{`name ==`, `1 + 2`, `nosuch("x")`} {
		if _, err := Expr(src); !errors.Is(err, ErrExpr) {
			t.Errorf("%s: expected ErrExpr, got %v", src, err)
		}
	}
}
