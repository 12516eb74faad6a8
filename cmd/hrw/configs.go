package main

import (
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rewrite"
	"github.com/signadot/rewrite/charset"
	"github.com/signadot/rewrite/debug"
	"github.com/signadot/rewrite/rules"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Rules    string `cli:"name=r aliases=rules desc='yaml rules file'"`
	Encoding string `cli:"name=e aliases=encoding desc='document encoding label, overrides the rules file'"`
	Diff     bool   `cli:"name=diff desc='show a diff of input and output instead of the output'"`
	Color    bool   `cli:"name=color desc='color the diff'"`
	Verbose  bool   `cli:"name=v desc='log dispatch and removed content to stderr'"`
	Gops     bool   `cli:"name=gops desc='run a gops agent while rewriting'"`
	MaxToken int    `cli:"name=maxToken desc='maximum bytes buffered for one token, 0 for no limit'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// rewriterOpts builds the rewriter options from the rules file and flags.
func (cfg *MainConfig) rewriterOpts() ([]rewrite.Option, error) {
	var res []rewrite.Option
	if cfg.Rules != "" {
		f, err := rules.LoadFile(cfg.Rules)
		if err != nil {
			return nil, err
		}
		res, err = f.Options()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Encoding != "" {
		enc, err := charset.Lookup(cfg.Encoding)
		if err != nil {
			return nil, err
		}
		res = append(res, rewrite.WithEncoding(enc))
	}
	if cfg.MaxToken > 0 {
		res = append(res, rewrite.WithMaxTokenSize(cfg.MaxToken))
	}
	if cfg.Verbose {
		debug.Set(debug.Tokens(), true, true)
	}
	res = append(res, rewrite.WithLogger(newLogger(cfg.Verbose)))
	return res, nil
}

// useColor reports whether diff output to f should be colored.
func (cfg *MainConfig) useColor(f any) bool {
	if cfg.Color {
		return true
	}
	fd, ok := f.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd.Fd())
}
