package model

import "time"

// ListItem is a manga membership inside a UserList. It has no identity of
// its own; insertion order is display order.
type ListItem struct {
	MangaID string    `json:"manga_id"`
	AddedAt time.Time `json:"added_at"`
}

// UserList is a user-curated reading list. Mutations go through the list
// service and each returns the new full snapshot; no partial client-side
// mutation is authoritative.
type UserList struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	OwnerUID  string     `json:"owner_uid"`
	OwnerName string     `json:"owner_name,omitempty"`
	Items     []ListItem `json:"items"`
	ItemCount int        `json:"item_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Len returns the number of items in the list. The backend is supposed to
// keep item_count equal to len(items), but the client does not assume it:
// when items are present they are authoritative.
func (l *UserList) Len() int {
	if l == nil {
		return 0
	}
	if l.Items != nil {
		return len(l.Items)
	}
	return l.ItemCount
}

// Contains reports whether the list holds the given manga.
func (l *UserList) Contains(mangaID string) bool {
	if l == nil {
		return false
	}
	for _, item := range l.Items {
		if item.MangaID == mangaID {
			return true
		}
	}
	return false
}

// ListSummary is the itemless projection returned by the paginated list
// endpoints.
type ListSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerUID  string    `json:"owner_uid"`
	OwnerName string    `json:"owner_name,omitempty"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListPage is one page of list summaries plus the total across all pages.
type ListPage struct {
	Lists []ListSummary `json:"lists"`
	Total int           `json:"total"`
}
