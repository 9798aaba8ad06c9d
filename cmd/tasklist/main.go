package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/tasklist/internal/cli"
	"github.com/Makepad-fr/tasklist/internal/config"
	"github.com/Makepad-fr/tasklist/internal/logging"
	"github.com/Makepad-fr/tasklist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand) layered over config files and env.
	fs := flag.NewFlagSet("tasklist", flag.ExitOnError)
	fs.Usage = func() {
		cli.PrintHelp(fs.Output())
	}
	cfg, args, err := config.Load(fs, os.Args[1:], config.DefaultSources())
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.UI.Theme)

	// Hand the remaining args to the CLI runner.
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Config: cfg,
		Logger: logging.New(os.Stderr, cfg.Log),
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
