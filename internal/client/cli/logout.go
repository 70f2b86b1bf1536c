package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/postboard/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	// Сервер только стирает cookie, токен остается валидным до истечения
	if err := c.api.Logout(ctx, session.Credential); err != nil {
		c.io.Printf("Warning: server logout failed: %v\n", err)
	}

	if err := c.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
