// Package store defines the document-store contract the rest of the
// server is written against, plus its two implementations: MongoStore
// for production and MemStore for tests and local development.
//
// Ids are opaque, store-assigned strings. Callers compare and print
// them but never construct or parse them. Deleting an absent document
// is a no-op on every implementation, which keeps the provisioning
// saga's compensations safe to repeat.
package store

import (
	"context"
	"errors"

	"github.com/gadgetswap-dev/gadgetswap/internal/models"
)

var (
	// ErrNotFound is returned by every FindX method when no document
	// matches.
	ErrNotFound = errors.New("store: document not found")

	// ErrDuplicateEmail is returned by InsertUser when the unique
	// index on users.email rejects the write. This index, not the
	// saga's advisory pre-check, is the real duplicate-registration
	// guarantee.
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// Store is the persistence boundary. One instance is constructed at
// boot and handed to each component; nothing holds a package-global
// handle.
type Store interface {
	// Users
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) (string, error)
	SetUserChainRef(ctx context.Context, email string, kind models.ChainKind, chainID string) (int64, error)
	ReplaceUserWishlist(ctx context.Context, email string, wishlist []string) (int64, error)
	DeleteUserByEmail(ctx context.Context, email string) error

	// Message chains
	InsertMessageChain(ctx context.Context, c *models.MessageChain) (string, error)
	FindMessageChainByEmail(ctx context.Context, email string) (*models.MessageChain, error)
	DeleteMessageChainByEmail(ctx context.Context, email string) error

	// Notification chains
	InsertNotificationChain(ctx context.Context, c *models.NotificationChain) (string, error)
	FindNotificationChainByEmail(ctx context.Context, email string) (*models.NotificationChain, error)
	DeleteNotificationChainByEmail(ctx context.Context, email string) error

	// Activity history chains
	InsertActivityHistoryChain(ctx context.Context, c *models.ActivityHistoryChain) (string, error)
	FindActivityHistoryChainByEmail(ctx context.Context, email string) (*models.ActivityHistoryChain, error)
	DeleteActivityHistoryChainByEmail(ctx context.Context, email string) error

	// Gadgets (read-only from the server's perspective)
	FindGadgetByID(ctx context.Context, id string) (*models.Gadget, error)
	FindGadgetsByIDs(ctx context.Context, ids []string) ([]models.Gadget, error)
	ListGadgets(ctx context.Context) ([]models.Gadget, error)
}
