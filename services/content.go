package services

import (
	"context"
	"fmt"
	"strings"

	"clothing-store/models"
	"clothing-store/repositories"
)

type BannerService struct {
	banners repositories.BannerRepository
}

func NewBannerService(banners repositories.BannerRepository) *BannerService {
	return &BannerService{banners: banners}
}

func (s *BannerService) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	banners, err := s.banners.ListBanners(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// Create defaults a banner to active unless the request says otherwise.
func (s *BannerService) Create(ctx context.Context, req models.BannerRequest) (*models.Banner, error) {
	banner := &models.Banner{
		Image:    strings.TrimSpace(req.Image),
		IsActive: req.IsActive == nil || *req.IsActive,
		Order:    req.Order,
	}
	if banner.Image == "" {
		return nil, models.ErrValidation("Image is required", models.FieldError{Field: "image", Message: "image is required"})
	}
	if err := s.banners.CreateBanner(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return banner, nil
}

func (s *BannerService) Update(ctx context.Context, id string, req models.BannerRequest) (*models.Banner, error) {
	banner := &models.Banner{
		ID:       id,
		Image:    strings.TrimSpace(req.Image),
		IsActive: req.IsActive == nil || *req.IsActive,
		Order:    req.Order,
	}
	if banner.Image == "" {
		return nil, models.ErrValidation("Image is required", models.FieldError{Field: "image", Message: "image is required"})
	}
	if err := s.banners.UpdateBanner(ctx, banner); err != nil {
		return nil, notFoundOr(err, "Banner not found", "update banner")
	}
	return banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	if err := s.banners.DeleteBanner(ctx, id); err != nil {
		return notFoundOr(err, "Banner not found", "delete banner")
	}
	return nil
}

func (s *BannerService) Toggle(ctx context.Context, id string) (*models.Banner, error) {
	banner, err := s.banners.ToggleBanner(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Banner not found", "toggle banner")
	}
	return banner, nil
}

type AnnouncementService struct {
	announcements repositories.AnnouncementRepository
}

func NewAnnouncementService(announcements repositories.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcements: announcements}
}

func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	announcements, err := s.announcements.ListAnnouncements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

func (s *AnnouncementService) Create(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, models.ErrValidation("Text is required", models.FieldError{Field: "text", Message: "text is required"})
	}
	announcement := &models.Announcement{Text: text}
	if err := s.announcements.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return announcement, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := s.announcements.DeleteAnnouncement(ctx, id); err != nil {
		return notFoundOr(err, "Announcement not found", "delete announcement")
	}
	return nil
}
