// Command journalctl manages a Yawmiyat database offline: backups, restores
// and statistics.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sakif/yawmiyat/internal/cli"
	"github.com/sakif/yawmiyat/internal/config"
	sqliteRepo "github.com/sakif/yawmiyat/internal/repository/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"YAML config file; DB_PATH overrides it." type:"path" default:"yawmiyat.yaml"`
	Verbose bool   `help:"Log service events to stderr." short:"v"`

	Export cli.ExportCmd `cmd:"" help:"Write a backup of one account."`
	Import cli.ImportCmd `cmd:"" help:"Restore a JSON backup into an account."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show journal statistics."`
	Streak cli.StreakCmd `cmd:"" help:"Show the current writing streak."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("journalctl"),
		kong.Description("Offline tools for the Yawmiyat journal database"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if CLI.Verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	return kctx.Run(cli.NewContext(context.Background(), db, os.Stdout, logger, time.Now))
}
