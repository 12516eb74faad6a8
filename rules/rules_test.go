package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/rewrite"
	"github.com/signadot/rewrite/charset"
)

const example = `
rules:
  - select: 'name == "a" && has("href")'
    setAttrs:
      - {name: rel, value: nofollow}
    removeAttrs: [target]
    append:
      - text: " <ext>"
  - tag: script
    remove: true
  - tag: font
    unwrap: true
  - tag: b
    rename: strong
    before:
      - html: "["
    after:
      - html: "]"
    endTag:
      before:
        - html: "!"
  - tag: img
    after:
      - html: "<br>"
    append:
      - html: "ignored"
  - tag: p
    select: 'attr("class") == "old"'
    innerContent:
      text: "new"
`

func TestRulesRewrite(t *testing.T) {
	f, err := Load(strings.NewReader(example))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := f.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := `<a href=/x target=_blank>x</a><a>y</a><script>alert(1)</script>` +
		`<font color=red><i>z</i></font><b>bold</b><img src=i><p class=old>old</p><p>keep</p>`
	out, err := rewrite.New(opts...).RewriteString(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `<a href="/x" rel="nofollow">x &lt;ext&gt;</a><a>y</a>` +
		`<i>z</i>[<strong>bold!</strong>]<img src=i><br><p class=old>new</p><p>keep</p>`
	if out != expected {
		t.Errorf("expected\n%q\ngot\n%q", expected, out)
	}
}

func TestRulesEncoding(t *testing.T) {
	f, err := Load(strings.NewReader("encoding: latin1\nrules: []\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.Options(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Encoding = "nonesuch"
	if _, err := f.Options(); !errors.Is(err, charset.ErrUnknownEncoding) {
		t.Errorf("expected ErrUnknownEncoding, got %v", err)
	}
}

func TestRulesInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "no selector", src: "rules:\n  - remove: true\n"},
		{name: "both contents", src: "rules:\n  - tag: a\n    before:\n      - {html: x, text: y}\n"},
		{name: "no content", src: "rules:\n  - tag: a\n    replace: {}\n"},
		{name: "data without type", src: "rules:\n  - tag: a\n    before:\n      - {data: x}\n"},
		{name: "unknown type", src: "rules:\n  - tag: a\n    before:\n      - {data: x, type: xml}\n"},
		{name: "type without data", src: "rules:\n  - tag: a\n    before:\n      - {html: x, type: text}\n"},
		{name: "remove and unwrap", src: "rules:\n  - tag: a\n    remove: true\n    unwrap: true\n"},
		{name: "unknown field", src: "rules:\n  - tag: a\n    explode: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.src)); !errors.Is(err, ErrRule) {
				t.Errorf("expected ErrRule, got %v", err)
			}
		})
	}
}

func TestRulesBadSelector(t *testing.T) {
	f, err := Load(strings.NewReader("rules:\n  - select: 'name =='\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.Options(); err == nil {
		t.Error("expected selector error")
	}
}

func TestRulesRenameError(t *testing.T) {
	f, err := Load(strings.NewReader("rules:\n  - tag: b\n    rename: '1b'\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := f.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = rewrite.New(opts...).RewriteString("<b>x</b>")
	if !errors.Is(err, rewrite.ErrNameFirstChar) {
		t.Errorf("expected ErrNameFirstChar, got %v", err)
	}
}

func TestRulesTypedData(t *testing.T) {
	src := `
rules:
  - tag: p
    prepend:
      - {data: "<i>", type: text}
    append:
      - {data: "<hr>", type: html}
`
	f, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := f.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := rewrite.New(opts...).RewriteString("<p>x</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "<p>&lt;i&gt;x<hr></p>"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}
