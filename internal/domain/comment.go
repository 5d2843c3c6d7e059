package domain

import (
	"strings"
	"time"
)

const maxCommentLength = 2000

// WishlistItemComment is either a root comment (ParentID nil) or a reply to a
// root comment. Threads never go deeper than two levels.
type WishlistItemComment struct {
	ID        CommentID
	ItemID    ItemID
	UserID    UserID
	ParentID  *CommentID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *WishlistItemComment) IsReply() bool { return c.ParentID != nil }

func NewComment(itemID ItemID, userID UserID, content string) (*WishlistItemComment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &WishlistItemComment{
		ID:        NewCommentID(),
		ItemID:    itemID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewReply attaches a reply to parent, on parent's item.
func NewReply(parent *WishlistItemComment, userID UserID, content string) (*WishlistItemComment, error) {
	if parent.IsReply() {
		return nil, Conflict("cannot reply to a reply")
	}
	reply, err := NewComment(parent.ItemID, userID, content)
	if err != nil {
		return nil, err
	}
	parentID := parent.ID
	reply.ParentID = &parentID
	return reply, nil
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", Validation("comment cannot be empty")
	}
	if len(content) > maxCommentLength {
		return "", Validation("comment is too long")
	}
	return content, nil
}
