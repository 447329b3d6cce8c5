package application

import (
	"context"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Lists exposes reading-list operations to the CLI.
type Lists struct {
	lists driven.ListClient
}

// NewLists creates a Lists service.
func NewLists(lists driven.ListClient) *Lists {
	return &Lists{lists: lists}
}

func (s *Lists) Public(ctx context.Context, page, pageSize int) (*model.ListPage, error) {
	return s.lists.GetPublicLists(ctx, page, pageSize)
}

func (s *Lists) Mine(ctx context.Context) (*model.ListPage, error) {
	return s.lists.GetMyLists(ctx)
}

func (s *Lists) Get(ctx context.Context, listID string) (*model.UserList, error) {
	return s.lists.GetList(ctx, listID)
}

func (s *Lists) Create(ctx context.Context, name string) (*model.UserList, error) {
	return s.lists.CreateList(ctx, name)
}

func (s *Lists) Rename(ctx context.Context, listID, name string) (*model.UserList, error) {
	return s.lists.RenameList(ctx, listID, name)
}

func (s *Lists) Delete(ctx context.Context, listID string) error {
	return s.lists.DeleteList(ctx, listID)
}

func (s *Lists) Add(ctx context.Context, listID, mangaID string) (*model.UserList, error) {
	return s.lists.AddItem(ctx, listID, mangaID)
}

func (s *Lists) Remove(ctx context.Context, listID, mangaID string) (*model.UserList, error) {
	return s.lists.RemoveItem(ctx, listID, mangaID)
}

// Toggle adds the manga to the list when absent and removes it when
// present, returning the new snapshot and whether the manga is now a
// member. Mirrors the web client's add-to-list modal behavior.
func (s *Lists) Toggle(ctx context.Context, listID, mangaID string) (*model.UserList, bool, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, false, err
	}

	if list.Contains(mangaID) {
		updated, err := s.lists.RemoveItem(ctx, listID, mangaID)
		if err != nil {
			return nil, false, err
		}
		return updated, false, nil
	}

	updated, err := s.lists.AddItem(ctx, listID, mangaID)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}
