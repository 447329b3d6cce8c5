package driven

import (
	"context"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// ListClient is the driven port for the reading-list service. Every
// mutation returns the new full UserList snapshot; callers replace their
// copy rather than patching it.
type ListClient interface {
	GetPublicLists(ctx context.Context, page, pageSize int) (*model.ListPage, error)
	GetMyLists(ctx context.Context) (*model.ListPage, error)
	GetList(ctx context.Context, listID string) (*model.UserList, error)

	CreateList(ctx context.Context, name string) (*model.UserList, error)
	RenameList(ctx context.Context, listID, name string) (*model.UserList, error)
	DeleteList(ctx context.Context, listID string) error

	AddItem(ctx context.Context, listID, mangaID string) (*model.UserList, error)
	RemoveItem(ctx context.Context, listID, mangaID string) (*model.UserList, error)
}
