package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug    bool   `help:"Enable debug logging" env:"SEVENSTUD_DEBUG"`
	LogLevel string `help:"Log level (debug, info, warn, error)" env:"SEVENSTUD_LOG_LEVEL"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Server   ServerCmd        `cmd:"" help:"Run the HTTP and websocket server"`
	Simulate SimulateCmd      `cmd:"" help:"Play bot-only hands and report results per profile"`
	Play     PlayCmd          `cmd:"" help:"Play against bots in the terminal"`
	Eval     EvalCmd          `cmd:"" help:"Score and compare stud hands"`
}

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sevenstud"),
		kong.Description("Fixed-limit seven-card stud server, simulator and table"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
