package memory

import (
	"context"
	"sort"
	"time"

	"clothing-store/models"
)

// BannerRepository -------------------------------------------------------------

func (s *Store) CreateBanner(_ context.Context, banner *models.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	banner.ID = s.nextIDLocked()
	banner.CreatedAt = time.Now().UTC()
	s.banners[banner.ID] = *banner
	return nil
}

func (s *Store) UpdateBanner(_ context.Context, banner *models.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.banners[banner.ID]
	if !ok {
		return models.ErrRecordNotFound
	}
	banner.CreatedAt = existing.CreatedAt
	s.banners[banner.ID] = *banner
	return nil
}

func (s *Store) DeleteBanner(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.banners[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(s.banners, id)
	return nil
}

func (s *Store) ToggleBanner(_ context.Context, id string) (*models.Banner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.banners[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	b.IsActive = !b.IsActive
	s.banners[id] = b
	return &b, nil
}

func (s *Store) ListBanners(_ context.Context, activeOnly bool) ([]models.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Banner{}
	for _, b := range s.banners {
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// AnnouncementRepository -------------------------------------------------------

func (s *Store) CreateAnnouncement(_ context.Context, announcement *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	announcement.ID = s.nextIDLocked()
	announcement.CreatedAt = time.Now().UTC()
	s.announcements[announcement.ID] = *announcement
	return nil
}

func (s *Store) ListAnnouncements(context.Context) ([]models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteAnnouncement(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.announcements[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(s.announcements, id)
	return nil
}

// NotificationRepository -------------------------------------------------------

func (s *Store) SaveFailedNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = s.nextIDLocked()
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	n.To = append([]string{}, n.To...)
	s.notifications[n.ID] = *n
	return nil
}

func (s *Store) ListFailedNotifications(_ context.Context, maxAttempts, limit int) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.Attempts >= maxAttempts {
			continue
		}
		n.To = append([]string{}, n.To...)
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteFailedNotification(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notifications, id)
	return nil
}
