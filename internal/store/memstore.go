package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gadgetswap-dev/gadgetswap/internal/models"
)

// MemStore is an in-memory Store used by tests and local development.
// It mirrors MongoStore's observable behavior: unique email index,
// zero modified-count on no-op updates, no-op deletes of absent
// documents.
type MemStore struct {
	mu sync.RWMutex

	usersByEmail          map[string]*models.User
	messageChains         map[string]*models.MessageChain
	notificationChains    map[string]*models.NotificationChain
	activityHistoryChains map[string]*models.ActivityHistoryChain
	gadgets               map[string]*models.Gadget
	gadgetOrder           []string
}

func NewMemStore() *MemStore {
	return &MemStore{
		usersByEmail:          make(map[string]*models.User),
		messageChains:         make(map[string]*models.MessageChain),
		notificationChains:    make(map[string]*models.NotificationChain),
		activityHistoryChains: make(map[string]*models.ActivityHistoryChain),
		gadgets:               make(map[string]*models.Gadget),
	}
}

func (s *MemStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.usersByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *u
	copied.Wishlist = slices.Clone(u.Wishlist)
	return &copied, nil
}

func (s *MemStore) InsertUser(ctx context.Context, u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[u.Email]; exists {
		return "", ErrDuplicateEmail
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	copied := *u
	copied.Wishlist = slices.Clone(u.Wishlist)
	s.usersByEmail[u.Email] = &copied

	return u.ID, nil
}

func (s *MemStore) SetUserChainRef(ctx context.Context, email string, kind models.ChainKind, chainID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usersByEmail[email]
	if !ok {
		return 0, nil
	}

	switch kind {
	case models.ChainMessage:
		if u.MessageChainID == chainID {
			return 0, nil
		}
		u.MessageChainID = chainID
	case models.ChainNotification:
		if u.NotificationChainID == chainID {
			return 0, nil
		}
		u.NotificationChainID = chainID
	case models.ChainActivityHistory:
		if u.ActivityHistoryChainID == chainID {
			return 0, nil
		}
		u.ActivityHistoryChainID = chainID
	default:
		return 0, nil
	}

	return 1, nil
}

func (s *MemStore) ReplaceUserWishlist(ctx context.Context, email string, wishlist []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usersByEmail[email]
	if !ok {
		return 0, nil
	}

	if slices.Equal(u.Wishlist, wishlist) {
		return 0, nil
	}

	u.Wishlist = slices.Clone(wishlist)
	return 1, nil
}

func (s *MemStore) DeleteUserByEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.usersByEmail, email)
	return nil
}

func (s *MemStore) InsertMessageChain(ctx context.Context, c *models.MessageChain) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	copied := *c
	copied.Items = slices.Clone(c.Items)
	s.messageChains[c.UserEmail] = &copied

	return c.ID, nil
}

func (s *MemStore) FindMessageChainByEmail(ctx context.Context, email string) (*models.MessageChain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.messageChains[email]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *c
	copied.Items = slices.Clone(c.Items)
	return &copied, nil
}

func (s *MemStore) DeleteMessageChainByEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messageChains, email)
	return nil
}

func (s *MemStore) InsertNotificationChain(ctx context.Context, c *models.NotificationChain) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	copied := *c
	copied.Items = slices.Clone(c.Items)
	s.notificationChains[c.UserEmail] = &copied

	return c.ID, nil
}

func (s *MemStore) FindNotificationChainByEmail(ctx context.Context, email string) (*models.NotificationChain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.notificationChains[email]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *c
	copied.Items = slices.Clone(c.Items)
	return &copied, nil
}

func (s *MemStore) DeleteNotificationChainByEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notificationChains, email)
	return nil
}

func (s *MemStore) InsertActivityHistoryChain(ctx context.Context, c *models.ActivityHistoryChain) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	copied := *c
	copied.Items = slices.Clone(c.Items)
	s.activityHistoryChains[c.UserEmail] = &copied

	return c.ID, nil
}

func (s *MemStore) FindActivityHistoryChainByEmail(ctx context.Context, email string) (*models.ActivityHistoryChain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.activityHistoryChains[email]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *c
	copied.Items = slices.Clone(c.Items)
	return &copied, nil
}

func (s *MemStore) DeleteActivityHistoryChainByEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.activityHistoryChains, email)
	return nil
}

// SeedGadget inserts a catalog entry. The HTTP surface never writes
// gadgets; tests and local fixtures use this.
func (s *MemStore) SeedGadget(g *models.Gadget) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	copied := *g
	copied.Images = slices.Clone(g.Images)

	if _, exists := s.gadgets[g.ID]; !exists {
		s.gadgetOrder = append(s.gadgetOrder, g.ID)
	}
	s.gadgets[g.ID] = &copied

	return g.ID
}

func (s *MemStore) FindGadgetByID(ctx context.Context, id string) (*models.Gadget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.gadgets[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *g
	copied.Images = slices.Clone(g.Images)
	return &copied, nil
}

func (s *MemStore) FindGadgetsByIDs(ctx context.Context, ids []string) ([]models.Gadget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gadgets := []models.Gadget{}

	for _, id := range s.gadgetOrder {
		if !slices.Contains(ids, id) {
			continue
		}
		g := s.gadgets[id]
		copied := *g
		copied.Images = slices.Clone(g.Images)
		gadgets = append(gadgets, copied)
	}

	return gadgets, nil
}

func (s *MemStore) ListGadgets(ctx context.Context) ([]models.Gadget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gadgets := make([]models.Gadget, 0, len(s.gadgetOrder))

	for _, id := range s.gadgetOrder {
		g := s.gadgets[id]
		copied := *g
		copied.Images = slices.Clone(g.Images)
		gadgets = append(gadgets, copied)
	}

	return gadgets, nil
}
