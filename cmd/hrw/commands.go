package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "hrw").
		WithSynopsis("hrw [opts] [files]").
		WithDescription("hrw rewrites html documents as a stream according to a rules file.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return hrwMain(cfg, cc, args)
		})
}
