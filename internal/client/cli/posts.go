package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (c *Cli) runPost(ctx context.Context, args []string) error {
	session, err := c.credential(ctx)
	if err != nil {
		return err
	}

	var title, text string
	if len(args) >= 2 {
		title, text = args[0], strings.Join(args[1:], " ")
	} else {
		if title, err = c.io.ReadInput("Title: "); err != nil {
			return fmt.Errorf("failed to read title: %w", err)
		}
		if text, err = c.io.ReadInput("Text: "); err != nil {
			return fmt.Errorf("failed to read text: %w", err)
		}
	}

	post, err := c.api.CreatePost(ctx, session.Credential, title, text)
	if err != nil {
		return rejected(err)
	}

	c.io.Printf("✓ Post %d published\n", post.ID)
	return nil
}

func (c *Cli) runPosts(ctx context.Context) error {
	// Список публичный: без сессии просто не будет отметок лайков
	var credential string
	if session, err := c.credential(ctx); err == nil {
		credential = session.Credential
	}

	posts, err := c.api.ListPosts(ctx, credential)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		c.io.Println("No posts yet.")
		return nil
	}

	for _, p := range posts {
		liked := ""
		if p.UserLiked != nil && *p.UserLiked {
			liked = " ♥"
		}
		c.io.Printf("#%d %s (user %d, %d likes%s)\n", p.ID, p.Title, p.UserID, p.NumLikes, liked)
		c.io.Printf("    %s\n", p.Text)
	}

	return nil
}

func (c *Cli) runLike(ctx context.Context, args []string, like bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: postboard like|unlike <post id>")
	}
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || postID <= 0 {
		return fmt.Errorf("invalid post id: %q", args[0])
	}

	session, err := c.credential(ctx)
	if err != nil {
		return err
	}

	if like {
		err = c.api.LikePost(ctx, session.Credential, postID)
	} else {
		err = c.api.UnlikePost(ctx, session.Credential, postID)
	}
	if err != nil {
		return rejected(err)
	}

	if like {
		c.io.Printf("✓ Liked post %d\n", postID)
	} else {
		c.io.Printf("✓ Removed like from post %d\n", postID)
	}
	return nil
}
