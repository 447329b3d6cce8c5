package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ListClient = (*ListService)(nil)

// ListService implements the driven.ListClient port against the list
// backend.
type ListService struct {
	client *Client
}

// NewListService wraps a pipeline client for the list base URL.
func NewListService(client *Client) *ListService {
	return &ListService{client: client}
}

func (s *ListService) GetPublicLists(ctx context.Context, page, pageSize int) (*model.ListPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	params := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
	var result model.ListPage
	if err := s.client.do(ctx, http.MethodGet, "/api/lists/public", params, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ListService) GetMyLists(ctx context.Context) (*model.ListPage, error) {
	var result model.ListPage
	if err := s.client.do(ctx, http.MethodGet, "/api/lists/me", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ListService) GetList(ctx context.Context, listID string) (*model.UserList, error) {
	var list model.UserList
	path := "/api/lists/" + url.PathEscape(listID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ListService) CreateList(ctx context.Context, name string) (*model.UserList, error) {
	var list model.UserList
	body := map[string]string{"name": name}
	if err := s.client.do(ctx, http.MethodPost, "/api/lists", nil, body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ListService) RenameList(ctx context.Context, listID, name string) (*model.UserList, error) {
	var list model.UserList
	path := "/api/lists/" + url.PathEscape(listID)
	body := map[string]string{"name": name}
	if err := s.client.do(ctx, http.MethodPatch, path, nil, body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ListService) DeleteList(ctx context.Context, listID string) error {
	path := "/api/lists/" + url.PathEscape(listID)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (s *ListService) AddItem(ctx context.Context, listID, mangaID string) (*model.UserList, error) {
	var list model.UserList
	path := fmt.Sprintf("/api/lists/%s/items", url.PathEscape(listID))
	body := map[string]string{"manga_id": mangaID}
	if err := s.client.do(ctx, http.MethodPost, path, nil, body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ListService) RemoveItem(ctx context.Context, listID, mangaID string) (*model.UserList, error) {
	var list model.UserList
	path := fmt.Sprintf("/api/lists/%s/items/%s", url.PathEscape(listID), url.PathEscape(mangaID))
	if err := s.client.do(ctx, http.MethodDelete, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
