package mongo

import (
	"context"
	"sort"
	"time"

	"clothing-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = ""
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}
	res, err := s.col(productsCollection).InsertOne(ctx, product)
	if err != nil {
		return translate(err)
	}
	product.ID = insertedHex(res)
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, productID string, product *models.Product) error {
	set := bson.M{
		"id":           product.ProductID,
		"name":         product.Name,
		"price":        product.Price,
		"marketPrice":  product.MarketPrice,
		"category":     product.Category,
		"image":        product.Image,
		"images":       product.Images,
		"sizes":        product.Sizes,
		"colors":       product.Colors,
		"inStock":      product.InStock,
		"description":  product.Description,
		"isNewArrival": product.IsNewArrival,
	}

	var updated models.Product
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.col(productsCollection).FindOneAndUpdate(ctx, bson.M{"id": productID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return translate(err)
	}
	*product = updated
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	res, err := s.col(productsCollection).DeleteOne(ctx, bson.M{"id": productID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var p models.Product
	if err := s.col(productsCollection).FindOne(ctx, bson.M{"id": productID}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) ResolveProducts(ctx context.Context, productIDs []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	cur, err := s.col(productsCollection).Find(ctx, bson.M{"id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ProductID] = p
	}
	return out, nil
}

func (s *Store) ListProducts(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	total, err := s.col(productsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(skip(page, limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"images": 0, "reviews": 0})
	cur, err := s.col(productsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func (s *Store) GalleryByCategory(ctx context.Context, perCategory int) ([]models.CategoryGallery, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "products", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "category", Value: "$_id"},
			{Key: "products", Value: bson.D{{Key: "$slice", Value: bson.A{"$products", perCategory}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}

	cur, err := s.col(productsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var groups []struct {
		Category string           `bson:"category"`
		Products []models.Product `bson:"products"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}

	galleries := make([]models.CategoryGallery, 0, len(groups))
	for _, g := range groups {
		galleries = append(galleries, models.CategoryGallery{Category: g.Category, Products: g.Products})
	}
	return galleries, nil
}

func (s *Store) ListNewArrivals(ctx context.Context, page, limit int) ([]models.ProductSummary, int, error) {
	filter := bson.M{"isNewArrival": true}
	total, err := s.col(productsCollection).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(skip(page, limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"id": 1, "name": 1, "price": 1, "marketPrice": 1, "image": 1, "category": 1, "createdAt": 1})
	cur, err := s.col(productsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	summaries := make([]models.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}
	return summaries, int(total), nil
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	values, err := s.col(productsCollection).Distinct(ctx, "category", bson.M{"category": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if c, ok := v.(string); ok && c != "" {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) AppendReview(ctx context.Context, productID string, review models.Review) error {
	res, err := s.col(productsCollection).UpdateOne(ctx,
		bson.M{"id": productID},
		bson.M{"$push": bson.M{"reviews": review}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}
