package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gadgetswap-dev/gadgetswap/internal/store"
)

var (
	// ErrForbidden is returned when the caller's verified identity does
	// not match the account being mutated.
	ErrForbidden = errors.New("wishlist: caller does not own this account")

	// ErrUserNotFound is returned when no account exists for the email.
	ErrUserNotFound = errors.New("wishlist: user not found")
)

// ToggleResult is the outcome of one toggle. Changed is false when the
// store reported zero modified documents, which callers surface as a
// distinct "no changes" outcome rather than an error.
type ToggleResult struct {
	Wishlist []string
	Added    bool
	Changed  bool
}

// WishlistService flips a gadget id's membership in a user's wishlist.
type WishlistService struct {
	store store.Store
}

func NewWishlistService(s store.Store) *WishlistService {
	return &WishlistService{store: s}
}

// Toggle removes gadgetID from the wishlist if present (every
// occurrence) and adds it if absent (never a duplicate). callerEmail
// must come from a verified session token, never from the request
// body.
//
// The read-modify-write below is not isolated: two concurrent toggles
// for the same user can both read the same prior wishlist and the last
// write wins, silently dropping the other. Known lost-update hazard.
func (s *WishlistService) Toggle(ctx context.Context, callerEmail, userEmail, gadgetID string) (*ToggleResult, error) {
	if callerEmail != userEmail {
		return nil, ErrForbidden
	}

	user, err := s.store.FindUserByEmail(ctx, userEmail)

	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	present := slices.Contains(user.Wishlist, gadgetID)

	var next []string

	if present {
		next = slices.DeleteFunc(slices.Clone(user.Wishlist), func(id string) bool {
			return id == gadgetID
		})
	} else {
		next = append(slices.Clone(user.Wishlist), gadgetID)
	}
	if next == nil {
		next = []string{}
	}

	modified, err := s.store.ReplaceUserWishlist(ctx, userEmail, next)

	if err != nil {
		return nil, fmt.Errorf("update wishlist: %w", err)
	}

	updated, err := s.store.FindUserByEmail(ctx, userEmail)

	if errors.Is(err, store.ErrNotFound) {
		// The account vanished between the write and the reload. The
		// write matched nothing, so report it as a no-changes outcome
		// with the wishlist we computed rather than failing the call.
		return &ToggleResult{
			Wishlist: next,
			Added:    !present,
			Changed:  false,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}

	wishlist := updated.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}

	return &ToggleResult{
		Wishlist: wishlist,
		Added:    !present,
		Changed:  modified > 0,
	}, nil
}
