package controllers

import (
	"clothing-store/models"
	"clothing-store/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BannerController struct {
	banners *services.BannerService
	log     logrus.FieldLogger
}

func NewBannerController(banners *services.BannerService, log logrus.FieldLogger) *BannerController {
	return &BannerController{banners: banners, log: log}
}

// @Summary Active banners
// @Tags Banners
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Banner}
// @Router /api/banner/active [get]
func (ctrl *BannerController) Active(c *gin.Context) {
	ctrl.list(c, true)
}

// @Summary All banners
// @Tags Banners
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Banner}
// @Router /api/banner/banners [get]
func (ctrl *BannerController) All(c *gin.Context) {
	ctrl.list(c, false)
}

func (ctrl *BannerController) list(c *gin.Context, activeOnly bool) {
	banners, err := ctrl.banners.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Banners retrieved", banners)
}

// @Summary Create banner
// @Tags Banners
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body models.BannerRequest true "Banner"
// @Success 201 {object} models.Response{data=models.Banner}
// @Router /api/banner/admin [post]
func (ctrl *BannerController) Create(c *gin.Context) {
	var req models.BannerRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	banner, err := ctrl.banners.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondCreated(c, "Banner created", banner)
}

// @Summary Update banner
// @Tags Banners
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Banner id"
// @Param request body models.BannerRequest true "Banner"
// @Success 200 {object} models.Response{data=models.Banner}
// @Router /api/banner/admin/{id} [put]
func (ctrl *BannerController) Update(c *gin.Context) {
	var req models.BannerRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	banner, err := ctrl.banners.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Banner updated", banner)
}

// @Summary Delete banner
// @Tags Banners
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Banner id"
// @Success 200 {object} models.Response
// @Router /api/banner/admin/{id} [delete]
func (ctrl *BannerController) Delete(c *gin.Context) {
	if err := ctrl.banners.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Banner deleted", nil)
}

// @Summary Toggle banner visibility
// @Tags Banners
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Banner id"
// @Success 200 {object} models.Response{data=models.Banner}
// @Router /api/banner/admin/{id}/toggle [patch]
func (ctrl *BannerController) Toggle(c *gin.Context) {
	banner, err := ctrl.banners.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Banner updated", banner)
}

type AnnouncementController struct {
	announcements *services.AnnouncementService
	log           logrus.FieldLogger
}

func NewAnnouncementController(announcements *services.AnnouncementService, log logrus.FieldLogger) *AnnouncementController {
	return &AnnouncementController{announcements: announcements, log: log}
}

// @Summary Announcements
// @Tags Announcements
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Announcement}
// @Router /api/announcements [get]
func (ctrl *AnnouncementController) List(c *gin.Context) {
	announcements, err := ctrl.announcements.List(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Announcements retrieved", announcements)
}

// @Summary Create announcement
// @Tags Announcements
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body models.AnnouncementRequest true "Announcement"
// @Success 201 {object} models.Response{data=models.Announcement}
// @Router /api/announcements [post]
func (ctrl *AnnouncementController) Create(c *gin.Context) {
	var req models.AnnouncementRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	announcement, err := ctrl.announcements.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondCreated(c, "Announcement created", announcement)
}

// @Summary Delete announcement
// @Tags Announcements
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Announcement id"
// @Success 200 {object} models.Response
// @Router /api/announcements/{id} [delete]
func (ctrl *AnnouncementController) Delete(c *gin.Context) {
	if err := ctrl.announcements.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Announcement deleted", nil)
}
