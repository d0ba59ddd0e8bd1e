// Package cli implements the journalctl subcommands. Each command works
// directly against the journal database, without the HTTP server.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sakif/yawmiyat/internal/model"
	sqliteRepo "github.com/sakif/yawmiyat/internal/repository/sqlite"
	"github.com/sakif/yawmiyat/internal/service"
)

// Context is what kong passes to every command's Run.
type Context struct {
	Ctx     context.Context
	Users   *service.UserService
	Journal *service.JournalService
	Exports *service.ExportService
	Out     io.Writer
}

// NewContext builds the services the commands need on top of db.
func NewContext(ctx context.Context, db *sqliteRepo.DB, out io.Writer, logger *slog.Logger, now service.Clock) *Context {
	return &Context{
		Ctx:     ctx,
		Users:   service.NewUserService(db, logger),
		Journal: service.NewJournalService(db, db, db, logger, now),
		Exports: service.NewExportService(db, db, logger, now),
		Out:     out,
	}
}

// UserFlag selects the account a command acts on.
type UserFlag struct {
	User string `help:"Email of the account." short:"u" required:""`
}

func (f UserFlag) resolve(ctx *Context) (*model.User, error) {
	user, err := ctx.Users.ByEmail(ctx.Ctx, f.User)
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", f.User, err)
	}
	return user, nil
}
