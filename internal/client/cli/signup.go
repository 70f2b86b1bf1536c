package cli

import (
	"context"
)

func (c *Cli) runSignup(ctx context.Context, args []string) error {
	c.io.Println("=== Registration ===")

	username, err := c.username(args)
	if err != nil {
		return err
	}

	password, err := c.getPassword("Password (6-128 chars): ")
	if err != nil {
		return err
	}

	result, err := c.api.Signup(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %d\n", result.UserID)
	c.io.Printf("Username: %s\n", username)
	c.io.Println("Please run 'postboard login' to start posting.")

	return nil
}
