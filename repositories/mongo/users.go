package mongo

import (
	"context"
	"time"

	"clothing-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = ""
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}
	if user.Cart == nil {
		user.Cart = []models.CartItem{}
	}

	res, err := s.col(usersCollection).InsertOne(ctx, user)
	if err != nil {
		return translate(err)
	}
	user.ID = insertedHex(res)
	return nil
}

func (s *Store) findUser(ctx context.Context, filter interface{}) (*models.User, error) {
	var user models.User
	if err := s.col(usersCollection).FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return s.findUser(ctx, bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": bson.M{"$gt": now},
	})
}

func (s *Store) ListUsers(ctx context.Context, page, limit int) ([]models.User, int, error) {
	total, err := s.col(usersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip(page, limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0, "resetPasswordToken": 0, "resetPasswordExpires": 0})
	cur, err := s.col(usersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, int(total), nil
}

func (s *Store) UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, models.ErrRecordNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.col(usersCollection).FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	oid, ok := objectID(id)
	if !ok {
		return models.ErrRecordNotFound
	}
	update := bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""},
	}
	return s.updateOne(ctx, usersCollection, bson.M{"_id": oid}, update)
}

func (s *Store) SetUserResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	oid, ok := objectID(id)
	if !ok {
		return models.ErrRecordNotFound
	}
	update := bson.M{"$set": bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": expires,
		"updatedAt":            time.Now().UTC(),
	}}
	return s.updateOne(ctx, usersCollection, bson.M{"_id": oid}, update)
}

// updateOne reports ErrRecordNotFound when the filter matched nothing.
func (s *Store) updateOne(ctx context.Context, collection string, filter, update interface{}) error {
	res, err := s.col(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func (s *Store) userExists(ctx context.Context, filter interface{}) (bool, error) {
	n, err := s.col(usersCollection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
