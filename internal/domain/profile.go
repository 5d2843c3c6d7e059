package domain

import (
	"strings"
	"time"
)

type UserProfile struct {
	UserID    UserID
	Username  *string
	FirstName *string
	LastName  *string
	Birthday  *time.Time
	PhotoURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileChanges is a partial update. Nil fields are left alone; an empty
// string clears the corresponding text field.
type ProfileChanges struct {
	Username  *string
	FirstName *string
	LastName  *string
	Birthday  *time.Time
	PhotoURL  *string
}

func NewUserProfile(userID UserID) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{UserID: userID, CreatedAt: now, UpdatedAt: now}
}

// Name is "First Last" when any part is set, then the username, then "".
func (p *UserProfile) Name() string {
	parts := make([]string, 0, 2)
	for _, s := range []*string{p.FirstName, p.LastName} {
		if s != nil && *s != "" {
			parts = append(parts, *s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if p.Username != nil {
		return *p.Username
	}
	return ""
}

func (p *UserProfile) Update(ch ProfileChanges) {
	changed := false
	changed = setText(&p.Username, ch.Username) || changed
	changed = setText(&p.FirstName, ch.FirstName) || changed
	changed = setText(&p.LastName, ch.LastName) || changed
	changed = setText(&p.PhotoURL, ch.PhotoURL) || changed
	if ch.Birthday != nil && (p.Birthday == nil || !p.Birthday.Equal(*ch.Birthday)) {
		b := *ch.Birthday
		p.Birthday = &b
		changed = true
	}
	if changed {
		p.UpdatedAt = time.Now().UTC()
	}
}

// setText applies an optional text change. "" stores nil.
func setText(dst **string, v *string) bool {
	if v == nil {
		return false
	}
	if *v == "" {
		if *dst == nil {
			return false
		}
		*dst = nil
		return true
	}
	if *dst != nil && **dst == *v {
		return false
	}
	s := *v
	*dst = &s
	return true
}
