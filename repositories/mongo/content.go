package mongo

import (
	"context"
	"time"

	"clothing-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateBanner(ctx context.Context, banner *models.Banner) error {
	banner.ID = ""
	banner.CreatedAt = time.Now().UTC()
	res, err := s.col(bannersCollection).InsertOne(ctx, banner)
	if err != nil {
		return err
	}
	banner.ID = insertedHex(res)
	return nil
}

func (s *Store) UpdateBanner(ctx context.Context, banner *models.Banner) error {
	oid, ok := objectID(banner.ID)
	if !ok {
		return models.ErrRecordNotFound
	}
	set := bson.M{"image": banner.Image, "isActive": banner.IsActive, "order": banner.Order}

	var updated models.Banner
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.col(bannersCollection).FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return translate(err)
	}
	*banner = updated
	return nil
}

func (s *Store) DeleteBanner(ctx context.Context, id string) error {
	return s.deleteByID(ctx, bannersCollection, id)
}

func (s *Store) ToggleBanner(ctx context.Context, id string) (*models.Banner, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "isActive", Value: bson.D{{Key: "$not", Value: bson.A{"$isActive"}}}}}}},
	}

	var banner models.Banner
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.col(bannersCollection).FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&banner); err != nil {
		return nil, translate(err)
	}
	return &banner, nil
}

func (s *Store) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}})
	cur, err := s.col(bannersCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	banners := []models.Banner{}
	if err := cur.All(ctx, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *Store) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = ""
	announcement.CreatedAt = time.Now().UTC()
	res, err := s.col(announcementsCollection).InsertOne(ctx, announcement)
	if err != nil {
		return err
	}
	announcement.ID = insertedHex(res)
	return nil
}

func (s *Store) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col(announcementsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	announcements := []models.Announcement{}
	if err := cur.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.deleteByID(ctx, announcementsCollection, id)
}

func (s *Store) SaveFailedNotification(ctx context.Context, n *models.Notification) error {
	now := time.Now().UTC()
	if n.ID == "" {
		n.CreatedAt = now
		n.UpdatedAt = now
		res, err := s.col(notificationsCollection).InsertOne(ctx, n)
		if err != nil {
			return err
		}
		n.ID = insertedHex(res)
		return nil
	}

	oid, ok := objectID(n.ID)
	if !ok {
		return models.ErrRecordNotFound
	}
	n.UpdatedAt = now
	update := bson.M{"$set": bson.M{"attempts": n.Attempts, "lastError": n.LastError, "updatedAt": now}}
	return s.updateOne(ctx, notificationsCollection, bson.M{"_id": oid}, update)
}

func (s *Store) ListFailedNotifications(ctx context.Context, maxAttempts, limit int) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := s.col(notificationsCollection).Find(ctx, bson.M{"attempts": bson.M{"$lt": maxAttempts}}, opts)
	if err != nil {
		return nil, err
	}
	out := []models.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteFailedNotification(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := s.col(notificationsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (s *Store) deleteByID(ctx context.Context, collection, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return models.ErrRecordNotFound
	}
	res, err := s.col(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}
