package domain

import (
	"strings"
	"time"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// ParseVisibility accepts the lower-case wire names; "" means private.
func ParseVisibility(s string) (Visibility, error) {
	if s == "" {
		return VisibilityPrivate, nil
	}
	v := Visibility(strings.ToLower(s))
	if !v.Valid() {
		return "", Validation("visibility must be private or public")
	}
	return v, nil
}

type WishlistItem struct {
	ID           ItemID
	WishlistID   WishlistID
	Title        string
	Description  *string
	Link         *string
	Priority     *int
	IsReceived   bool
	ReceivedNote *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemChanges is a partial item update; nil fields are left alone.
type ItemChanges struct {
	Title        *string
	Description  *string
	Link         *string
	Priority     *int
	IsReceived   *bool
	ReceivedNote *string
}

func NewWishlistItem(title string, description, link *string, priority *int) (*WishlistItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, Validation("title cannot be empty")
	}
	if priority != nil && *priority < 1 {
		return nil, Validation("priority must be positive")
	}
	now := time.Now().UTC()
	return &WishlistItem{
		ID:          NewItemID(),
		Title:       title,
		Description: cloneString(description),
		Link:        cloneString(link),
		Priority:    cloneInt(priority),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update validates every provided field before writing any of them. An empty
// description, link or received note clears that field.
func (i *WishlistItem) Update(ch ItemChanges) error {
	titleChanged := ch.Title != nil && *ch.Title != i.Title
	if titleChanged && strings.TrimSpace(*ch.Title) == "" {
		return Validation("title cannot be empty")
	}
	priorityChanged := ch.Priority != nil && (i.Priority == nil || *i.Priority != *ch.Priority)
	if priorityChanged && *ch.Priority < 1 {
		return Validation("priority must be positive")
	}

	changed := false
	if titleChanged {
		i.Title = *ch.Title
		changed = true
	}
	changed = setText(&i.Description, ch.Description) || changed
	changed = setText(&i.Link, ch.Link) || changed
	if priorityChanged {
		i.Priority = cloneInt(ch.Priority)
		changed = true
	}
	if ch.IsReceived != nil && *ch.IsReceived != i.IsReceived {
		i.IsReceived = *ch.IsReceived
		changed = true
	}
	changed = setText(&i.ReceivedNote, ch.ReceivedNote) || changed
	if changed {
		i.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// Wishlist is the aggregate root. Items are owned exclusively and kept in
// insertion order.
type Wishlist struct {
	ID          WishlistID
	OwnerID     UserID
	Name        string
	Description *string
	Visibility  Visibility
	Items       []*WishlistItem
	CreatedAt   time.Time
	UpdatedAt   time.Time

	pending pendingItems
}

// pendingItems tracks item rows written since the aggregate was loaded, so
// saving it touches only those rows.
type pendingItems struct {
	added   map[ItemID]bool
	updated map[ItemID]bool
	removed []ItemID
}

// ItemWrites lists the item rows a save has to insert, update or delete.
type ItemWrites struct {
	Added   []*WishlistItem
	Updated []*WishlistItem
	Removed []ItemID
}

func NewWishlist(owner UserID, name string, description *string, visibility Visibility) (*Wishlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Validation("name cannot be empty")
	}
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, Validation("visibility must be private or public")
	}
	now := time.Now().UTC()
	return &Wishlist{
		ID:          NewWishlistID(),
		OwnerID:     owner,
		Name:        name,
		Description: cloneString(description),
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (w *Wishlist) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return Validation("name cannot be empty")
	}
	if name == w.Name {
		return nil
	}
	w.Name = name
	w.touch()
	return nil
}

func (w *Wishlist) ChangeDescription(description *string) {
	if equalString(w.Description, description) {
		return
	}
	w.Description = cloneString(description)
	w.touch()
}

func (w *Wishlist) SetVisibility(v Visibility) error {
	if !v.Valid() {
		return Validation("visibility must be private or public")
	}
	if v == w.Visibility {
		return nil
	}
	w.Visibility = v
	w.touch()
	return nil
}

func (w *Wishlist) AddItem(item *WishlistItem) error {
	if w.Item(item.ID) != nil {
		return Conflict("item already belongs to this wishlist")
	}
	item.WishlistID = w.ID
	w.Items = append(w.Items, item)
	if w.pending.added == nil {
		w.pending.added = make(map[ItemID]bool)
	}
	w.pending.added[item.ID] = true
	w.touch()
	return nil
}

// UpdateItem applies ch to one of the wishlist's items.
func (w *Wishlist) UpdateItem(id ItemID, ch ItemChanges) (*WishlistItem, error) {
	item := w.Item(id)
	if item == nil {
		return nil, NotFound("item not found")
	}
	before := item.UpdatedAt
	if err := item.Update(ch); err != nil {
		return nil, err
	}
	if !item.UpdatedAt.Equal(before) && !w.pending.added[id] {
		if w.pending.updated == nil {
			w.pending.updated = make(map[ItemID]bool)
		}
		w.pending.updated[id] = true
	}
	return item, nil
}

// RemoveItem reports whether an item was removed. Unknown ids change nothing.
func (w *Wishlist) RemoveItem(id ItemID) bool {
	for idx, item := range w.Items {
		if item.ID == id {
			w.Items = append(w.Items[:idx:idx], w.Items[idx+1:]...)
			if w.pending.added[id] {
				delete(w.pending.added, id)
			} else {
				delete(w.pending.updated, id)
				w.pending.removed = append(w.pending.removed, id)
			}
			w.touch()
			return true
		}
	}
	return false
}

func (w *Wishlist) Item(id ItemID) *WishlistItem {
	for _, item := range w.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (w *Wishlist) ItemIDs() []ItemID {
	ids := make([]ItemID, len(w.Items))
	for i, item := range w.Items {
		ids[i] = item.ID
	}
	return ids
}

func (w *Wishlist) IsOwnedBy(user UserID) bool { return w.OwnerID == user }

// PendingItemWrites reports item changes made since the last MarkPersisted.
// Added and Updated follow item order.
func (w *Wishlist) PendingItemWrites() ItemWrites {
	var out ItemWrites
	for _, item := range w.Items {
		switch {
		case w.pending.added[item.ID]:
			out.Added = append(out.Added, item)
		case w.pending.updated[item.ID]:
			out.Updated = append(out.Updated, item)
		}
	}
	out.Removed = append(out.Removed, w.pending.removed...)
	return out
}

// MarkPersisted forgets pending item changes once they have been saved.
func (w *Wishlist) MarkPersisted() { w.pending = pendingItems{} }

// Clone deep-copies the wishlist and its items under newOwner. Every copy gets
// a fresh identity; received state is not carried over.
func (w *Wishlist) Clone(newOwner UserID) *Wishlist {
	now := time.Now().UTC()
	clone := &Wishlist{
		ID:          NewWishlistID(),
		OwnerID:     newOwner,
		Name:        w.Name,
		Description: cloneString(w.Description),
		Visibility:  w.Visibility,
		Items:       make([]*WishlistItem, 0, len(w.Items)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, item := range w.Items {
		clone.Items = append(clone.Items, &WishlistItem{
			ID:          NewItemID(),
			WishlistID:  clone.ID,
			Title:       item.Title,
			Description: cloneString(item.Description),
			Link:        cloneString(item.Link),
			Priority:    cloneInt(item.Priority),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return clone
}

func (w *Wishlist) touch() { w.UpdatedAt = time.Now().UTC() }

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
