package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// mockListClient keeps a single mutable list so Toggle can be exercised
// against both membership states.
type mockListClient struct {
	list *model.UserList
}

func (m *mockListClient) GetPublicLists(context.Context, int, int) (*model.ListPage, error) {
	return &model.ListPage{}, nil
}

func (m *mockListClient) GetMyLists(context.Context) (*model.ListPage, error) {
	return &model.ListPage{}, nil
}

func (m *mockListClient) GetList(context.Context, string) (*model.UserList, error) {
	copied := *m.list
	return &copied, nil
}

func (m *mockListClient) CreateList(_ context.Context, name string) (*model.UserList, error) {
	return &model.UserList{ID: "list-1", Name: name}, nil
}

func (m *mockListClient) RenameList(_ context.Context, _ string, name string) (*model.UserList, error) {
	m.list.Name = name
	copied := *m.list
	return &copied, nil
}

func (m *mockListClient) DeleteList(context.Context, string) error {
	return nil
}

func (m *mockListClient) AddItem(_ context.Context, _ string, mangaID string) (*model.UserList, error) {
	m.list.Items = append(m.list.Items, model.ListItem{MangaID: mangaID, AddedAt: time.Now()})
	m.list.ItemCount = len(m.list.Items)
	copied := *m.list
	return &copied, nil
}

func (m *mockListClient) RemoveItem(_ context.Context, _ string, mangaID string) (*model.UserList, error) {
	kept := m.list.Items[:0]
	for _, item := range m.list.Items {
		if item.MangaID != mangaID {
			kept = append(kept, item)
		}
	}
	m.list.Items = kept
	m.list.ItemCount = len(kept)
	copied := *m.list
	return &copied, nil
}

func TestLists_ToggleAddsWhenAbsent(t *testing.T) {
	client := &mockListClient{list: &model.UserList{ID: "list-1", Name: "Favorites", Items: []model.ListItem{}}}
	lists := NewLists(client)

	updated, nowMember, err := lists.Toggle(context.Background(), "list-1", "one-piece")

	require.NoError(t, err)
	assert.True(t, nowMember)
	assert.True(t, updated.Contains("one-piece"))
	assert.Equal(t, 1, updated.Len())
}

func TestLists_ToggleRemovesWhenPresent(t *testing.T) {
	client := &mockListClient{list: &model.UserList{
		ID:    "list-1",
		Name:  "Favorites",
		Items: []model.ListItem{{MangaID: "one-piece"}},
	}}
	lists := NewLists(client)

	updated, nowMember, err := lists.Toggle(context.Background(), "list-1", "one-piece")

	require.NoError(t, err)
	assert.False(t, nowMember)
	assert.False(t, updated.Contains("one-piece"))
	assert.Equal(t, 0, updated.Len())
}

func TestLists_ToggleTwiceRoundTrips(t *testing.T) {
	client := &mockListClient{list: &model.UserList{ID: "list-1", Items: []model.ListItem{}}}
	lists := NewLists(client)
	ctx := context.Background()

	_, nowMember, err := lists.Toggle(ctx, "list-1", "one-piece")
	require.NoError(t, err)
	assert.True(t, nowMember)

	updated, nowMember, err := lists.Toggle(ctx, "list-1", "one-piece")
	require.NoError(t, err)
	assert.False(t, nowMember)
	assert.Equal(t, 0, updated.Len())
}
