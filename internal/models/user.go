package models

import "time"

// User is the account document. Email is the natural key; the unique
// index on it is the real duplicate-registration guarantee (the saga's
// pre-check is advisory only).
type User struct {
	ID          string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	PhotoURL    string    `bson:"photoURL" json:"photoURL"`
	Phone       string    `bson:"phone" json:"phone"`
	Role        string    `bson:"role" json:"role"`
	JoinedAt    time.Time `bson:"joined_at" json:"joined_at"`

	// Wishlist holds gadget ids. Stored as an ordered sequence;
	// uniqueness is enforced on every write.
	Wishlist []string `bson:"wishlist" json:"wishlist"`

	// Back-references to the per-user chain documents. A fully
	// committed user has all three populated.
	MessageChainID         string `bson:"messageChainId" json:"messageChainId,omitempty"`
	NotificationChainID    string `bson:"notificationChainId" json:"notificationChainId,omitempty"`
	ActivityHistoryChainID string `bson:"activityHistoryChainId" json:"activityHistoryChainId,omitempty"`
}

// Profile is the outward shape of a user record: the Mongo id and the
// chain back-references are internal and never leave the server.
type Profile struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
	Wishlist    []string  `json:"wishlist"`
}

func (u *User) Profile() Profile {
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}
	return Profile{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Phone:       u.Phone,
		Role:        u.Role,
		JoinedAt:    u.JoinedAt,
		Wishlist:    wishlist,
	}
}
