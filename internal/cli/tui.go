package cli

import "github.com/sadopc/vigil/internal/tui"

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	return tui.Run(ctx.App)
}
