package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

func TestUserList_LenPrefersItems(t *testing.T) {
	// The backend is supposed to keep item_count in sync with items, but
	// the client must tolerate a disagreement and trust items.
	list := &model.UserList{
		Items:     []model.ListItem{{MangaID: "one-piece"}, {MangaID: "berserk"}},
		ItemCount: 7,
	}

	assert.Equal(t, 2, list.Len())
}

func TestUserList_LenFallsBackToItemCount(t *testing.T) {
	// Summary-shaped payloads omit items entirely.
	list := &model.UserList{ItemCount: 3}

	assert.Equal(t, 3, list.Len())
}

func TestUserList_LenNilSafe(t *testing.T) {
	var list *model.UserList

	assert.Equal(t, 0, list.Len())
}

func TestUserList_Contains(t *testing.T) {
	list := &model.UserList{Items: []model.ListItem{{MangaID: "one-piece"}}}

	assert.True(t, list.Contains("one-piece"))
	assert.False(t, list.Contains("berserk"))

	var nilList *model.UserList
	assert.False(t, nilList.Contains("one-piece"))
}
