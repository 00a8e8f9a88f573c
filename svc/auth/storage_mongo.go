package auth

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersCollection is the MongoDB collection holding user records.
const UsersCollection = "users"

type mongoUserStorage struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoUserStorage returns a UserStorage backed by db.users.
func NewMongoUserStorage(db *mongo.Database) UserStorage {
	return &mongoUserStorage{
		coll: db.Collection(UsersCollection),
		now:  time.Now,
	}
}

// UpsertUser is last-write-wins on profile fields. The admin role is only
// ever raised here, never lowered.
func (s *mongoUserStorage) UpsertUser(ctx context.Context, identity Identity, role Role) (*User, error) {
	now := s.now().UTC()

	set := bson.M{
		"name":        identity.Name,
		"avatar_url":  identity.AvatarURL,
		"provider":    identity.Provider,
		"provider_id": identity.ProviderID,
		"updated_at":  now,
	}
	setOnInsert := bson.M{"created_at": now}
	if role.IsAdmin() {
		set["role"] = RoleAdmin
	} else {
		setOnInsert["role"] = RoleUser
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u User
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"email": identity.Email},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts,
	).Decode(&u)
	if err != nil {
		return nil, fmt.Errorf("users: upsert %s: %w", identity.Email, err)
	}
	return &u, nil
}

func (s *mongoUserStorage) SetRole(ctx context.Context, email string, role Role) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role, "updated_at": s.now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("users: set role: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
