package cli

import (
	"context"
	"fmt"
)

// Run выполняет одну команду CLI
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signup", "register":
		return c.runSignup(ctx, args)
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "post":
		return c.runPost(ctx, args)
	case "posts":
		return c.runPosts(ctx)
	case "like":
		return c.runLike(ctx, args, true)
	case "unlike":
		return c.runLike(ctx, args, false)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
