package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadgetswap-dev/gadgetswap/internal/models"
	"github.com/gadgetswap-dev/gadgetswap/internal/store"
)

// flakyStore wraps a real MemStore and lets a test fail one operation
// at a chosen point in the saga.
type flakyStore struct {
	store.Store

	insertUser                 func(ctx context.Context, u *models.User) (string, error)
	insertMessageChain         func(ctx context.Context, c *models.MessageChain) (string, error)
	insertNotificationChain    func(ctx context.Context, c *models.NotificationChain) (string, error)
	insertActivityHistoryChain func(ctx context.Context, c *models.ActivityHistoryChain) (string, error)
	setUserChainRef            func(ctx context.Context, email string, kind models.ChainKind, chainID string) (int64, error)
	deleteUserByEmail          func(ctx context.Context, email string) error
}

func (f *flakyStore) InsertUser(ctx context.Context, u *models.User) (string, error) {
	if f.insertUser != nil {
		return f.insertUser(ctx, u)
	}
	return f.Store.InsertUser(ctx, u)
}

func (f *flakyStore) InsertMessageChain(ctx context.Context, c *models.MessageChain) (string, error) {
	if f.insertMessageChain != nil {
		return f.insertMessageChain(ctx, c)
	}
	return f.Store.InsertMessageChain(ctx, c)
}

func (f *flakyStore) InsertNotificationChain(ctx context.Context, c *models.NotificationChain) (string, error) {
	if f.insertNotificationChain != nil {
		return f.insertNotificationChain(ctx, c)
	}
	return f.Store.InsertNotificationChain(ctx, c)
}

func (f *flakyStore) InsertActivityHistoryChain(ctx context.Context, c *models.ActivityHistoryChain) (string, error) {
	if f.insertActivityHistoryChain != nil {
		return f.insertActivityHistoryChain(ctx, c)
	}
	return f.Store.InsertActivityHistoryChain(ctx, c)
}

func (f *flakyStore) SetUserChainRef(ctx context.Context, email string, kind models.ChainKind, chainID string) (int64, error) {
	if f.setUserChainRef != nil {
		return f.setUserChainRef(ctx, email, kind, chainID)
	}
	return f.Store.SetUserChainRef(ctx, email, kind, chainID)
}

func (f *flakyStore) DeleteUserByEmail(ctx context.Context, email string) error {
	if f.deleteUserByEmail != nil {
		return f.deleteUserByEmail(ctx, email)
	}
	return f.Store.DeleteUserByEmail(ctx, email)
}

func newUser(email string) *models.User {
	return &models.User{
		Email:       email,
		DisplayName: "Test User",
		Role:        "user",
		Wishlist:    []string{},
	}
}

func assertNoTrace(t *testing.T, ms *store.MemStore, email string) {
	t.Helper()
	ctx := context.Background()

	_, err := ms.FindUserByEmail(ctx, email)
	assert.ErrorIs(t, err, store.ErrNotFound, "user should not exist")

	_, err = ms.FindMessageChainByEmail(ctx, email)
	assert.ErrorIs(t, err, store.ErrNotFound, "message chain should not exist")

	_, err = ms.FindNotificationChainByEmail(ctx, email)
	assert.ErrorIs(t, err, store.ErrNotFound, "notification chain should not exist")

	_, err = ms.FindActivityHistoryChainByEmail(ctx, email)
	assert.ErrorIs(t, err, store.ErrNotFound, "activity history chain should not exist")
}

func TestCreateAccount_Success(t *testing.T) {
	ms := store.NewMemStore()
	p := NewProvisioner(ms)
	ctx := context.Background()

	userID, err := p.CreateAccount(ctx, newUser("a@x.com"))
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	user, err := ms.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	msgChain, err := ms.FindMessageChainByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	notifChain, err := ms.FindNotificationChainByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	actChain, err := ms.FindActivityHistoryChainByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	// Cross-links: each back-reference points at the chain whose
	// user_email matches.
	assert.Equal(t, msgChain.ID, user.MessageChainID)
	assert.Equal(t, notifChain.ID, user.NotificationChainID)
	assert.Equal(t, actChain.ID, user.ActivityHistoryChainID)

	assert.Equal(t, "a@x.com", msgChain.UserEmail)
	assert.Zero(t, msgChain.TotalCount)
	assert.Zero(t, msgChain.UnreadCount)
	assert.Empty(t, msgChain.Items)

	assert.Equal(t, "a@x.com", notifChain.UserEmail)
	assert.Zero(t, notifChain.TotalCount)
	assert.Zero(t, notifChain.UnreadCount)

	assert.Equal(t, "a@x.com", actChain.UserEmail)
	assert.Zero(t, actChain.TotalCount)
}

func TestCreateAccount_EmailRequired(t *testing.T) {
	p := NewProvisioner(store.NewMemStore())

	_, err := p.CreateAccount(context.Background(), &models.User{})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = p.CreateAccount(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	ms := store.NewMemStore()
	p := NewProvisioner(ms)
	ctx := context.Background()

	firstID, err := p.CreateAccount(ctx, newUser("a@x.com"))
	require.NoError(t, err)

	_, err = p.CreateAccount(ctx, newUser("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The losing attempt made no writes.
	user, err := ms.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, firstID, user.ID)
}

func TestCreateAccount_DuplicateCaughtByIndexNotPrecheck(t *testing.T) {
	// Two concurrent registrations can both pass the advisory
	// pre-check; the second insert then hits the unique index.
	ms := store.NewMemStore()
	fs := &flakyStore{
		Store: ms,
		insertUser: func(ctx context.Context, u *models.User) (string, error) {
			return "", store.ErrDuplicateEmail
		},
	}
	p := NewProvisioner(fs)

	_, err := p.CreateAccount(context.Background(), newUser("race@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
	assertNoTrace(t, ms, "race@x.com")
}

func TestCreateAccount_MessageChainInsertFails(t *testing.T) {
	ms := store.NewMemStore()
	boom := errors.New("write failed")
	fs := &flakyStore{
		Store: ms,
		insertMessageChain: func(ctx context.Context, c *models.MessageChain) (string, error) {
			return "", boom
		},
	}
	p := NewProvisioner(fs)

	_, err := p.CreateAccount(context.Background(), newUser("a@x.com"))
	require.ErrorIs(t, err, boom)

	assertNoTrace(t, ms, "a@x.com")
}

func TestCreateAccount_NotificationChainInsertFails(t *testing.T) {
	ms := store.NewMemStore()
	boom := errors.New("write failed")
	fs := &flakyStore{
		Store: ms,
		insertNotificationChain: func(ctx context.Context, c *models.NotificationChain) (string, error) {
			return "", boom
		},
	}
	p := NewProvisioner(fs)

	_, err := p.CreateAccount(context.Background(), newUser("a@x.com"))
	require.ErrorIs(t, err, boom)

	assertNoTrace(t, ms, "a@x.com")
}

func TestCreateAccount_ActivityChainInsertFails(t *testing.T) {
	ms := store.NewMemStore()
	boom := errors.New("write failed")
	fs := &flakyStore{
		Store: ms,
		insertActivityHistoryChain: func(ctx context.Context, c *models.ActivityHistoryChain) (string, error) {
			return "", boom
		},
	}
	p := NewProvisioner(fs)

	_, err := p.CreateAccount(context.Background(), newUser("a@x.com"))
	require.ErrorIs(t, err, boom)

	assertNoTrace(t, ms, "a@x.com")
}

func TestCreateAccount_LinkFailureRollsBack(t *testing.T) {
	ms := store.NewMemStore()
	boom := errors.New("update failed")
	fs := &flakyStore{
		Store: ms,
		setUserChainRef: func(ctx context.Context, email string, kind models.ChainKind, chainID string) (int64, error) {
			if kind == models.ChainMessage {
				return 0, boom
			}
			return ms.SetUserChainRef(ctx, email, kind, chainID)
		},
	}
	p := NewProvisioner(fs)

	_, err := p.CreateAccount(context.Background(), newUser("a@x.com"))
	require.ErrorIs(t, err, boom)

	assertNoTrace(t, ms, "a@x.com")
}

func TestCreateAccount_LinkMatchingNothingRollsBack(t *testing.T) {
	ms := store.NewMemStore()
	fs := &flakyStore{
		Store: ms,
		setUserChainRef: func(ctx context.Context, email string, kind models.ChainKind, chainID string) (int64, error) {
			if kind == models.ChainNotification {
				// The user record is gone, so the update succeeds but
				// matches zero documents.
				_ = ms.DeleteUserByEmail(ctx, email)
				return 0, nil
			}
			return ms.SetUserChainRef(ctx, email, kind, chainID)
		},
	}
	p := NewProvisioner(fs)

	_, err := p.CreateAccount(context.Background(), newUser("a@x.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching user record")

	assertNoTrace(t, ms, "a@x.com")
}

func TestCreateAccount_CompensationFailureKeepsOriginalError(t *testing.T) {
	ms := store.NewMemStore()
	boom := errors.New("write failed")
	fs := &flakyStore{
		Store: ms,
		insertNotificationChain: func(ctx context.Context, c *models.NotificationChain) (string, error) {
			return "", boom
		},
		deleteUserByEmail: func(ctx context.Context, email string) error {
			return errors.New("delete failed too")
		},
	}
	p := NewProvisioner(fs)

	// The caller sees the original failure, not the compensation one.
	_, err := p.CreateAccount(context.Background(), newUser("a@x.com"))
	assert.ErrorIs(t, err, boom)

	// The user delete failed, so that document is orphaned; the
	// message chain compensation still ran.
	_, err = ms.FindMessageChainByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "started", Started.String())
	assert.Equal(t, "committed", Committed.String())
	assert.Equal(t, "aborting", Aborting.String())
	assert.Equal(t, "unknown", State(99).String())
}
