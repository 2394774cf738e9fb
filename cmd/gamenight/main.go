package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"gamenight.hcl" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level (overrides config)"`

	Eval   EvalCmd   `cmd:"" help:"Classify a seven-card hand"`
	Odds   OddsCmd   `cmd:"" help:"Estimate win probability for each hand"`
	Deal   DealCmd   `cmd:"" help:"Deal a hand to the table and play it to showdown"`
	Settle SettleCmd `cmd:"" help:"Compute payments from final chip counts"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gamenight"),
		kong.Description("Hand ranking, live odds and settle-up for home poker games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gamenight",
	})
	ctx.Bind(logger)

	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
