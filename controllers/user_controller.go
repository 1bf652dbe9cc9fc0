package controllers

import (
	"clothing-store/services"
	"clothing-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	users *services.UserService
	log   logrus.FieldLogger
}

func NewUserController(users *services.UserService, log logrus.FieldLogger) *UserController {
	return &UserController{users: users, log: log}
}

// @Summary List users
// @Tags Users
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.PaginationResponse
// @Router /api/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 20, maxListLimit)

	result, err := ctrl.users.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondPage(c, "Users retrieved", result.Users, result.Meta)
}
