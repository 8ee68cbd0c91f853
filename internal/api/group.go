package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryloop/backend/internal/middleware"
	"github.com/pantryloop/backend/internal/models"
	"github.com/pantryloop/backend/internal/service"
)

type GroupHandler struct {
	groupService *service.GroupService
	seedService  *service.SeedService
	templateFile string
}

func NewGroupHandler(groupService *service.GroupService, seedService *service.SeedService, templateFile string) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		seedService:  seedService,
		templateFile: templateFile,
	}
}

func (h *GroupHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/group")
	{
		group.GET("", h.GetGroup)
		group.POST("", h.CreateGroup)
		group.POST("/template", h.CreateGroupFromTemplate)
		group.POST("/leave", h.Leave)
		group.POST("/join-code", h.JoinCode)
		group.POST("/join", h.Join)
	}
}

// groupResponse is returned after every group operation so the client can
// refresh its membership view in one round trip.
func (h *GroupHandler) groupResponse(c *gin.Context, group *models.Group) {
	if group == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	members, err := h.groupService.Members(c.Request.Context(), group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list group members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "members": members})
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	group, err := h.groupService.ResolveTenant(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve group"})
		return
	}
	h.groupResponse(c, group)
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	group, err := h.groupService.Create(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group"})
		return
	}
	h.groupResponse(c, group)
}

func (h *GroupHandler) CreateGroupFromTemplate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	existing, err := h.groupService.ResolveTenant(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve group"})
		return
	}
	if existing != nil {
		h.groupResponse(c, existing)
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group"})
		return
	}
	if err := h.seedService.SeedFromFile(c.Request.Context(), group.ID, h.templateFile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed group from template"})
		return
	}
	h.groupResponse(c, group)
}

func (h *GroupHandler) Leave(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.groupService.Leave(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave group"})
		return
	}
	h.groupResponse(c, nil)
}

func (h *GroupHandler) JoinCode(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	group, err := h.groupService.ResolveTenant(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve group"})
		return
	}
	if group == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "you must be in a group to invite others"})
		return
	}

	token, err := h.groupService.JoinToken(c.Request.Context(), group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate join code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *GroupHandler) Join(c *gin.Context) {
	var req JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	group, err := h.groupService.Join(c.Request.Context(), userID, req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join group"})
		return
	}
	h.groupResponse(c, group)
}
