package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gadgetswap-dev/gadgetswap/internal/models"
)

const (
	UsersCollection                 = "users"
	MessageChainsCollection         = "message_chains"
	NotificationChainsCollection    = "notification_chains"
	ActivityHistoryChainsCollection = "activity_history_chains"
	GadgetsCollection               = "gadgets"
)

// MongoStore implements Store on a MongoDB database. Ids are ObjectID
// hex strings assigned at insert time.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) users() *mongo.Collection {
	return s.db.Collection(UsersCollection)
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User

	err := s.users().FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}

func (s *MongoStore) InsertUser(ctx context.Context, u *models.User) (string, error) {
	if u.ID == "" {
		u.ID = bson.NewObjectID().Hex()
	}

	if _, err := s.users().InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	return u.ID, nil
}

func (s *MongoStore) SetUserChainRef(ctx context.Context, email string, kind models.ChainKind, chainID string) (int64, error) {
	field, err := chainRefField(kind)

	if err != nil {
		return 0, err
	}

	res, err := s.users().UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: field, Value: chainID}}}},
	)

	if err != nil {
		return 0, fmt.Errorf("link %s chain: %w", kind, err)
	}

	return res.ModifiedCount, nil
}

func (s *MongoStore) ReplaceUserWishlist(ctx context.Context, email string, wishlist []string) (int64, error) {
	res, err := s.users().UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "wishlist", Value: wishlist}}}},
	)

	if err != nil {
		return 0, fmt.Errorf("update wishlist: %w", err)
	}

	return res.ModifiedCount, nil
}

func (s *MongoStore) DeleteUserByEmail(ctx context.Context, email string) error {
	if _, err := s.users().DeleteOne(ctx, bson.D{{Key: "email", Value: email}}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertMessageChain(ctx context.Context, c *models.MessageChain) (string, error) {
	if c.ID == "" {
		c.ID = bson.NewObjectID().Hex()
	}

	if _, err := s.db.Collection(MessageChainsCollection).InsertOne(ctx, c); err != nil {
		return "", fmt.Errorf("insert message chain: %w", err)
	}

	return c.ID, nil
}

func (s *MongoStore) FindMessageChainByEmail(ctx context.Context, email string) (*models.MessageChain, error) {
	var c models.MessageChain

	err := s.db.Collection(MessageChainsCollection).
		FindOne(ctx, bson.D{{Key: "user_email", Value: email}}).Decode(&c)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find message chain: %w", err)
	}

	return &c, nil
}

func (s *MongoStore) DeleteMessageChainByEmail(ctx context.Context, email string) error {
	_, err := s.db.Collection(MessageChainsCollection).
		DeleteOne(ctx, bson.D{{Key: "user_email", Value: email}})

	if err != nil {
		return fmt.Errorf("delete message chain: %w", err)
	}

	return nil
}

func (s *MongoStore) InsertNotificationChain(ctx context.Context, c *models.NotificationChain) (string, error) {
	if c.ID == "" {
		c.ID = bson.NewObjectID().Hex()
	}

	if _, err := s.db.Collection(NotificationChainsCollection).InsertOne(ctx, c); err != nil {
		return "", fmt.Errorf("insert notification chain: %w", err)
	}

	return c.ID, nil
}

func (s *MongoStore) FindNotificationChainByEmail(ctx context.Context, email string) (*models.NotificationChain, error) {
	var c models.NotificationChain

	err := s.db.Collection(NotificationChainsCollection).
		FindOne(ctx, bson.D{{Key: "user_email", Value: email}}).Decode(&c)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find notification chain: %w", err)
	}

	return &c, nil
}

func (s *MongoStore) DeleteNotificationChainByEmail(ctx context.Context, email string) error {
	_, err := s.db.Collection(NotificationChainsCollection).
		DeleteOne(ctx, bson.D{{Key: "user_email", Value: email}})

	if err != nil {
		return fmt.Errorf("delete notification chain: %w", err)
	}

	return nil
}

func (s *MongoStore) InsertActivityHistoryChain(ctx context.Context, c *models.ActivityHistoryChain) (string, error) {
	if c.ID == "" {
		c.ID = bson.NewObjectID().Hex()
	}

	if _, err := s.db.Collection(ActivityHistoryChainsCollection).InsertOne(ctx, c); err != nil {
		return "", fmt.Errorf("insert activity history chain: %w", err)
	}

	return c.ID, nil
}

func (s *MongoStore) FindActivityHistoryChainByEmail(ctx context.Context, email string) (*models.ActivityHistoryChain, error) {
	var c models.ActivityHistoryChain

	err := s.db.Collection(ActivityHistoryChainsCollection).
		FindOne(ctx, bson.D{{Key: "user_email", Value: email}}).Decode(&c)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find activity history chain: %w", err)
	}

	return &c, nil
}

func (s *MongoStore) DeleteActivityHistoryChainByEmail(ctx context.Context, email string) error {
	_, err := s.db.Collection(ActivityHistoryChainsCollection).
		DeleteOne(ctx, bson.D{{Key: "user_email", Value: email}})

	if err != nil {
		return fmt.Errorf("delete activity history chain: %w", err)
	}

	return nil
}

func (s *MongoStore) FindGadgetByID(ctx context.Context, id string) (*models.Gadget, error) {
	var g models.Gadget

	err := s.db.Collection(GadgetsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&g)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find gadget: %w", err)
	}

	return &g, nil
}

func (s *MongoStore) FindGadgetsByIDs(ctx context.Context, ids []string) ([]models.Gadget, error) {
	if len(ids) == 0 {
		return []models.Gadget{}, nil
	}

	cursor, err := s.db.Collection(GadgetsCollection).
		Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})

	if err != nil {
		return nil, fmt.Errorf("find gadgets: %w", err)
	}

	var gadgets []models.Gadget

	if err := cursor.All(ctx, &gadgets); err != nil {
		return nil, fmt.Errorf("decode gadgets: %w", err)
	}

	return gadgets, nil
}

func (s *MongoStore) ListGadgets(ctx context.Context) ([]models.Gadget, error) {
	cursor, err := s.db.Collection(GadgetsCollection).Find(ctx, bson.D{})

	if err != nil {
		return nil, fmt.Errorf("list gadgets: %w", err)
	}

	var gadgets []models.Gadget

	if err := cursor.All(ctx, &gadgets); err != nil {
		return nil, fmt.Errorf("decode gadgets: %w", err)
	}

	return gadgets, nil
}

func chainRefField(kind models.ChainKind) (string, error) {
	switch kind {
	case models.ChainMessage:
		return "messageChainId", nil
	case models.ChainNotification:
		return "notificationChainId", nil
	case models.ChainActivityHistory:
		return "activityHistoryChainId", nil
	default:
		return "", fmt.Errorf("unknown chain kind %q", kind)
	}
}
