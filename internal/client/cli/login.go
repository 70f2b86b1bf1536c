package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/postboard/internal/client/storage"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")

	username, err := c.username(args)
	if err != nil {
		return err
	}

	password, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	result, err := c.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	session := &storage.Session{
		Username:   result.Username,
		UserID:     result.UserID,
		Credential: result.Credential,
		ExpiresAt:  result.ExpiresAt.Unix(),
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Printf("Session expires: %s\n", result.ExpiresAt.Format(time.RFC3339))

	return nil
}
