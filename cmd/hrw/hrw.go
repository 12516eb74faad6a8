package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/rewrite"

	"github.com/google/gops/agent"
)

func hrwMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Rules == "" {
		return fmt.Errorf("%w: -r rules file is required", cli.ErrUsage)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		} else {
			defer agent.Close()
		}
	}
	opts, err := cfg.rewriterOpts()
	if err != nil {
		return err
	}
	rw := rewrite.New(opts...)
	ctx := context.Background()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		if err := rewriteFile(ctx, cfg, cc, rw, file); err != nil {
			return err
		}
	}
	return nil
}

func rewriteFile(ctx context.Context, cfg *MainConfig, cc *cli.Context, rw *rewrite.Rewriter, file string) error {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	if cfg.Diff {
		if err := diffReader(ctx, cfg, cc, rw, f); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		return nil
	}
	if err := rw.Rewrite(ctx, cc.Out, f); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func diffReader(ctx context.Context, cfg *MainConfig, cc *cli.Context, rw *rewrite.Rewriter, r io.Reader) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	out := bytes.NewBuffer(nil)
	if err := rw.Rewrite(ctx, out, bytes.NewReader(in)); err != nil {
		return err
	}
	return writeDiff(cc.Out, string(in), out.String(), cfg.useColor(cc.Out))
}
