package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/kbsite/cmd/kbsite/commands"
	ferrors "git.home.luguber.info/inful/kbsite/internal/foundation/errors"
	"git.home.luguber.info/inful/kbsite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("kbsite"),
		kong.Description("Knowledge-base site configuration, sidebar and search toolkit"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := kctx.Run(&commands.Global{Ctx: ctx, Out: os.Stdout}, cli); err != nil {
		adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		code := adapter.Report(os.Stderr, err)
		cancel()
		os.Exit(code)
	}
}
