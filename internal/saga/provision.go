// Package saga implements account provisioning as an explicit
// multi-step state machine. The store offers no multi-document
// transaction, so a new User and its three dependent chain documents
// are created sequentially, with a compensating delete declared for
// each completed step. On failure the compensations run in reverse
// creation order; a compensation that itself fails is logged and
// skipped, never retried. There is no background job reconciling
// orphans left by a crash mid-saga or a failed compensation.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gadgetswap-dev/gadgetswap/internal/models"
	"github.com/gadgetswap-dev/gadgetswap/internal/store"
)

var (
	// ErrEmailRequired is returned when the new user carries no email.
	ErrEmailRequired = errors.New("saga: email is required")

	// ErrEmailTaken is returned when the email is already registered,
	// whether caught by the advisory pre-check or by the unique index
	// on insert.
	ErrEmailTaken = errors.New("saga: email already registered")
)

// State names the saga's position in the forward path. Each state is
// entered after its step has committed.
type State int

const (
	Started State = iota
	UserCreated
	MessageChainCreated
	NotificationChainCreated
	ActivityHistoryChainCreated
	Committed
	Aborting
)

func (s State) String() string {
	switch s {
	case Started:
		return "started"
	case UserCreated:
		return "user_created"
	case MessageChainCreated:
		return "message_chain_created"
	case NotificationChainCreated:
		return "notification_chain_created"
	case ActivityHistoryChainCreated:
		return "activity_history_chain_created"
	case Committed:
		return "committed"
	case Aborting:
		return "aborting"
	default:
		return "unknown"
	}
}

// Provisioner runs the account-creation saga against an injected
// store.
type Provisioner struct {
	store store.Store
}

func NewProvisioner(s store.Store) *Provisioner {
	return &Provisioner{store: s}
}

// compensation is a declared undo for one committed forward step.
// Deletes are keyed by email and ignore absent documents, so running a
// compensation twice is safe.
type compensation struct {
	state State
	undo  func(ctx context.Context) error
}

// linkChain writes a chain id into the user record and demands the
// update actually matched. Zero modified documents means the user row
// is gone (or the ref was somehow already set), and committing past it
// would leave a chain no user points at.
func (p *Provisioner) linkChain(ctx context.Context, email string, kind models.ChainKind, chainID string) error {
	modified, err := p.store.SetUserChainRef(ctx, email, kind, chainID)

	if err != nil {
		return fmt.Errorf("link %s chain: %w", kind, err)
	}
	if modified == 0 {
		return fmt.Errorf("link %s chain: no matching user record", kind)
	}
	return nil
}

// CreateAccount creates the User plus its message, notification, and
// activity-history chains, linking each chain id back into the user
// record. It returns the new user's id, ErrEmailTaken on a duplicate
// email, or the wrapped store failure after best-effort rollback.
//
// The pre-check in the Started state is a fast-fail optimization, not
// a lock: two concurrent calls for the same email can both pass it.
// The unique index on users.email is the real guarantee; the loser's
// insert surfaces as ErrEmailTaken.
func (p *Provisioner) CreateAccount(ctx context.Context, newUser *models.User) (string, error) {
	if newUser == nil || newUser.Email == "" {
		return "", ErrEmailRequired
	}

	email := newUser.Email
	state := Started

	var undoStack []compensation

	abort := func(cause error) error {
		log.Printf("saga: aborting provisioning for %s from state %s: %v", email, state, cause)
		state = Aborting
		// Reverse creation order; failures are logged and swallowed so
		// the original cause always reaches the caller.
		for i := len(undoStack) - 1; i >= 0; i-- {
			c := undoStack[i]
			if err := c.undo(ctx); err != nil {
				log.Printf("saga: compensation for state %s failed for %s (orphan possible): %v", c.state, email, err)
			}
		}
		return cause
	}

	// Started: advisory uniqueness pre-check.
	_, err := p.store.FindUserByEmail(ctx, email)

	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("check existing user: %w", err)
	}

	// UserCreated: nothing to compensate if the insert itself fails.
	userID, err := p.store.InsertUser(ctx, newUser)

	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	state = UserCreated
	undoStack = append(undoStack, compensation{state, func(ctx context.Context) error {
		return p.store.DeleteUserByEmail(ctx, email)
	}})

	// MessageChainCreated.
	messageChainID, err := p.store.InsertMessageChain(ctx, models.NewMessageChain(email))

	if err != nil {
		return "", abort(fmt.Errorf("insert message chain: %w", err))
	}

	state = MessageChainCreated
	undoStack = append(undoStack, compensation{state, func(ctx context.Context) error {
		return p.store.DeleteMessageChainByEmail(ctx, email)
	}})

	// A failed link leaves the chain unreachable from the user, so it
	// rolls back exactly like a failed chain insert.
	if err := p.linkChain(ctx, email, models.ChainMessage, messageChainID); err != nil {
		return "", abort(err)
	}

	// NotificationChainCreated.
	notificationChainID, err := p.store.InsertNotificationChain(ctx, models.NewNotificationChain(email))

	if err != nil {
		return "", abort(fmt.Errorf("insert notification chain: %w", err))
	}

	state = NotificationChainCreated
	undoStack = append(undoStack, compensation{state, func(ctx context.Context) error {
		return p.store.DeleteNotificationChainByEmail(ctx, email)
	}})

	if err := p.linkChain(ctx, email, models.ChainNotification, notificationChainID); err != nil {
		return "", abort(err)
	}

	// ActivityHistoryChainCreated.
	activityChainID, err := p.store.InsertActivityHistoryChain(ctx, models.NewActivityHistoryChain(email))

	if err != nil {
		return "", abort(fmt.Errorf("insert activity history chain: %w", err))
	}

	state = ActivityHistoryChainCreated
	undoStack = append(undoStack, compensation{state, func(ctx context.Context) error {
		return p.store.DeleteActivityHistoryChainByEmail(ctx, email)
	}})

	if err := p.linkChain(ctx, email, models.ChainActivityHistory, activityChainID); err != nil {
		return "", abort(err)
	}

	state = Committed

	return userID, nil
}
