package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/postboard/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")

	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("Status: Not authenticated")
			c.io.Println("Run 'postboard login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	expiresAt := time.Unix(session.ExpiresAt, 0)

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

	if session.Expired(c.now()) {
		c.io.Println("⚠️  Token has expired. Please login again.")
	} else {
		c.io.Printf("Time remaining: %s\n", expiresAt.Sub(c.now()).Round(time.Second))
	}

	return nil
}

func (c *Cli) runWhoami(ctx context.Context) error {
	session, err := c.credential(ctx)
	if err != nil {
		return err
	}

	me, err := c.api.Me(ctx, session.Credential)
	if err != nil {
		return rejected(err)
	}

	c.io.Printf("%s (user id %d)\n", me.Username, me.UserID)
	return nil
}
