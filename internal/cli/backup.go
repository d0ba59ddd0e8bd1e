package cli

import (
	"fmt"
	"os"

	"github.com/sakif/yawmiyat/internal/service"
)

type ExportCmd struct {
	UserFlag
	Format string `help:"Backup format." enum:"json,text" default:"json"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	user, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	data, err := ctx.Exports.Export(ctx.Ctx, user.ID, service.Format(c.Format))
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err = ctx.Out.Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0o600); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	fmt.Fprintf(ctx.Out, "Backup written to %s (%d bytes)\n", c.Output, len(data))
	return nil
}

type ImportCmd struct {
	UserFlag
	File string `arg:"" help:"JSON backup to restore." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	user, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	res, err := ctx.Exports.Import(ctx.Ctx, user.ID, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Imported %d entries and %d tags\n", res.Entries, res.Tags)
	return nil
}
