// Package rules loads rewrite rules from YAML.
//
//	encoding: windows-1252
//	rules:
//	  - select: 'name == "a" && has("href")'
//	    setAttrs:
//	      - {name: rel, value: nofollow}
//	    append:
//	      - text: " ↗"
//	  - tag: script
//	    remove: true
//	  - tag: font
//	    unwrap: true
//	  - tag: b
//	    rename: strong
//	    endTag:
//	      after:
//	        - html: "<!-- /b -->"
package rules

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/rewrite"
	"github.com/signadot/rewrite/charset"
	"github.com/signadot/rewrite/content"
	"github.com/signadot/rewrite/selector"

	"github.com/goccy/go-yaml"
)

type File struct {
	Encoding string `yaml:"encoding,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Content is literal content. Exactly one of HTML, Text and Data is set;
// Data takes its content type from Type, "html" or "text".
type Content struct {
	HTML *string `yaml:"html,omitempty"`
	Text *string `yaml:"text,omitempty"`
	Data *string `yaml:"data,omitempty"`
	Type string  `yaml:"type,omitempty"`

	ct content.Type
}

func (c *Content) validate() error {
	n := 0
	for _, s := range []*string{c.HTML, c.Text, c.Data} {
		if s != nil {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%w: content needs exactly one of html, text or data", ErrRule)
	}
	if c.Data == nil {
		if c.Type != "" {
			return fmt.Errorf("%w: content type only applies to data", ErrRule)
		}
		return nil
	}
	if c.Type == "" {
		return fmt.Errorf("%w: data needs a content type", ErrRule)
	}
	ct, err := content.ParseType(c.Type)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRule, err)
	}
	c.ct = ct
	return nil
}

func (c *Content) data() (string, content.Type) {
	switch {
	case c.HTML != nil:
		return *c.HTML, content.HTML
	case c.Text != nil:
		return *c.Text, content.Text
	}
	return *c.Data, c.ct
}

type Attr struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Rule applies its actions, in the order of the fields below, to every
// element matching Tag and Select.
type Rule struct {
	Tag    string `yaml:"tag,omitempty"`
	Select string `yaml:"select,omitempty"`

	Rename      string    `yaml:"rename,omitempty"`
	SetAttrs    []Attr    `yaml:"setAttrs,omitempty"`
	RemoveAttrs []string  `yaml:"removeAttrs,omitempty"`
	Before      []Content `yaml:"before,omitempty"`
	After       []Content `yaml:"after,omitempty"`
	Prepend     []Content `yaml:"prepend,omitempty"`
	Append      []Content `yaml:"append,omitempty"`
	Inner       *Content  `yaml:"innerContent,omitempty"`
	Replace     *Content  `yaml:"replace,omitempty"`
	Remove      bool      `yaml:"remove,omitempty"`
	Unwrap      bool      `yaml:"unwrap,omitempty"`

	EndTag *EndTagRule `yaml:"endTag,omitempty"`
}

// EndTagRule acts on the end tag of a matched element.
type EndTagRule struct {
	Before  []Content `yaml:"before,omitempty"`
	After   []Content `yaml:"after,omitempty"`
	Replace *Content  `yaml:"replace,omitempty"`
	Remove  bool      `yaml:"remove,omitempty"`
}

// Load decodes a rules file from r. Unknown fields are rejected.
func Load(r io.Reader) (*File, error) {
	f := &File{}
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRule, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadFile loads the rules file at path.
func LoadFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	f, err := Load(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *File) validate() error {
	for i := range f.Rules {
		if err := f.Rules[i].validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

func (r *Rule) validate() error {
	if r.Tag == "" && r.Select == "" {
		return fmt.Errorf("%w: one of tag or select is required", ErrRule)
	}
	if r.Remove && r.Unwrap {
		return fmt.Errorf("%w: remove and unwrap are exclusive", ErrRule)
	}
	var cs []*Content
	for _, l := range [][]Content{r.Before, r.After, r.Prepend, r.Append} {
		for i := range l {
			cs = append(cs, &l[i])
		}
	}
	cs = append(cs, r.Inner, r.Replace)
	if e := r.EndTag; e != nil {
		for _, l := range [][]Content{e.Before, e.After} {
			for i := range l {
				cs = append(cs, &l[i])
			}
		}
		cs = append(cs, e.Replace)
	}
	for _, c := range cs {
		if c == nil {
			continue
		}
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Options turns the file into rewriter options, encoding included.
func (f *File) Options() ([]rewrite.Option, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	var res []rewrite.Option
	if f.Encoding != "" {
		enc, err := charset.Lookup(f.Encoding)
		if err != nil {
			return nil, err
		}
		res = append(res, rewrite.WithEncoding(enc))
	}
	for i := range f.Rules {
		r := &f.Rules[i]
		sel, err := r.selector()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		res = append(res, rewrite.OnElement(sel, r.handler))
	}
	return res, nil
}

func (r *Rule) selector() (selector.Selector, error) {
	var sels []selector.Selector
	if r.Tag != "" {
		sels = append(sels, selector.Name(r.Tag))
	}
	if r.Select != "" {
		s, err := selector.Expr(r.Select)
		if err != nil {
			return nil, err
		}
		sels = append(sels, s)
	}
	if len(sels) == 1 {
		return sels[0], nil
	}
	return selector.All(sels...), nil
}

func (r *Rule) handler(e *rewrite.Element) error {
	if r.Rename != "" {
		if err := e.SetTagName(r.Rename); err != nil {
			return err
		}
	}
	for _, a := range r.SetAttrs {
		if err := e.SetAttribute(a.Name, a.Value); err != nil {
			return err
		}
	}
	for _, name := range r.RemoveAttrs {
		e.RemoveAttribute(name)
	}
	for i := range r.Before {
		e.Before(r.Before[i].data())
	}
	for i := range r.After {
		e.After(r.After[i].data())
	}
	for i := range r.Prepend {
		e.Prepend(r.Prepend[i].data())
	}
	for i := range r.Append {
		e.Append(r.Append[i].data())
	}
	if r.Inner != nil {
		e.SetInnerContent(r.Inner.data())
	}
	if r.Replace != nil {
		e.Replace(r.Replace.data())
	}
	switch {
	case r.Remove:
		e.Remove()
	case r.Unwrap:
		e.RemoveAndKeepContent()
	}
	if r.EndTag != nil {
		e.OnEndTag(rewrite.EndTagHandlerFunc(r.EndTag.apply))
	}
	return nil
}

func (er *EndTagRule) apply(end *rewrite.EndTag) error {
	for i := range er.Before {
		end.Before(er.Before[i].data())
	}
	for i := range er.After {
		end.After(er.After[i].data())
	}
	if er.Replace != nil {
		end.Replace(er.Replace.data())
	}
	if er.Remove {
		end.Remove()
	}
	return nil
}
