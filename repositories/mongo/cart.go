package mongo

import (
	"context"

	"clothing-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func lineMatch(key models.CartKey) bson.M {
	return bson.M{"productId": key.ProductID, "size": key.Size, "color": key.Color}
}

func (s *Store) GetCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	var doc struct {
		Cart []models.CartItem `bson:"cart"`
	}
	opts := options.FindOne().SetProjection(bson.M{"cart": 1})
	if err := s.col(usersCollection).FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	if doc.Cart == nil {
		doc.Cart = []models.CartItem{}
	}
	return doc.Cart, nil
}

// UpsertCartItem overwrites the quantity of an existing line in place, or
// pushes a new line guarded against a concurrent push of the same key.
func (s *Store) UpsertCartItem(ctx context.Context, userID string, item models.CartItem) error {
	oid, ok := objectID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	users := s.col(usersCollection)
	match := lineMatch(item.Key())

	for attempt := 0; attempt < 2; attempt++ {
		res, err := users.UpdateOne(ctx,
			bson.M{"_id": oid, "cart": bson.M{"$elemMatch": match}},
			bson.M{"$set": bson.M{"cart.$.quantity": item.Quantity}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		res, err = users.UpdateOne(ctx,
			bson.M{"_id": oid, "cart": bson.M{"$not": bson.M{"$elemMatch": match}}},
			bson.M{"$push": bson.M{"cart": item}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}

		exists, err := s.userExists(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if !exists {
			return models.ErrRecordNotFound
		}
	}
	return models.ErrRecordNotFound
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, userID string, key models.CartKey, quantity int) error {
	oid, ok := objectID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	return s.updateOne(ctx, usersCollection,
		bson.M{"_id": oid, "cart": bson.M{"$elemMatch": lineMatch(key)}},
		bson.M{"$set": bson.M{"cart.$.quantity": quantity}},
	)
}

func (s *Store) RemoveCartItem(ctx context.Context, userID string, key models.CartKey) error {
	oid, ok := objectID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	return s.updateOne(ctx, usersCollection, bson.M{"_id": oid}, bson.M{"$pull": bson.M{"cart": lineMatch(key)}})
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	oid, ok := objectID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	return s.updateOne(ctx, usersCollection, bson.M{"_id": oid}, bson.M{"$set": bson.M{"cart": []models.CartItem{}}})
}

func (s *Store) GetWishlist(ctx context.Context, userID string) ([]string, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	var doc struct {
		Wishlist []string `bson:"wishlist"`
	}
	opts := options.FindOne().SetProjection(bson.M{"wishlist": 1})
	if err := s.col(usersCollection).FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	if doc.Wishlist == nil {
		doc.Wishlist = []string{}
	}
	return doc.Wishlist, nil
}

func (s *Store) InWishlist(ctx context.Context, userID, productID string) (bool, error) {
	oid, ok := objectID(userID)
	if !ok {
		return false, models.ErrRecordNotFound
	}
	exists, err := s.userExists(ctx, bson.M{"_id": oid})
	if err != nil || !exists {
		if err == nil {
			err = models.ErrRecordNotFound
		}
		return false, err
	}
	return s.userExists(ctx, bson.M{"_id": oid, "wishlist": productID})
}

// ToggleWishlist uses a pipeline update so membership flips in one write.
func (s *Store) ToggleWishlist(ctx context.Context, userID, productID string) (bool, error) {
	oid, ok := objectID(userID)
	if !ok {
		return false, models.ErrRecordNotFound
	}

	current := bson.D{{Key: "$ifNull", Value: bson.A{"$wishlist", bson.A{}}}}
	id := bson.D{{Key: "$literal", Value: productID}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "wishlist", Value: bson.D{{Key: "$cond", Value: bson.D{
			{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{id, current}}}},
			{Key: "then", Value: bson.D{{Key: "$setDifference", Value: bson.A{current, bson.A{id}}}}},
			{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{current, bson.A{id}}}}},
		}}}}}}},
	}

	var doc struct {
		Wishlist []string `bson:"wishlist"`
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"wishlist": 1})
	if err := s.col(usersCollection).FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&doc); err != nil {
		return false, translate(err)
	}
	for _, v := range doc.Wishlist {
		if v == productID {
			return true, nil
		}
	}
	return false, nil
}
