package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	directoryapp "github.com/procure/backend/internal/application/directory"
)

// UserHandler handles directory API endpoints
type UserHandler struct {
	BaseHandler
	userService *directoryapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *directoryapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents a request to register a user
type CreateUserRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=200"`
	Email     string  `json:"email" binding:"required,email,max=200"`
	Role      string  `json:"role" binding:"required,oneof=employee manager purchasing EMPLOYEE MANAGER PURCHASING"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

// Create registers a new user
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := directoryapp.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if req.ManagerID != nil {
		managerID, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			h.BadRequest(c, "Invalid manager ID")
			return
		}
		appReq.ManagerID = &managerID
	}

	user, err := h.userService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Get returns a single user by ID
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// List returns users, optionally filtered by role
func (h *UserHandler) List(c *gin.Context) {
	if role := c.Query("role"); role != "" {
		users, err := h.userService.ListByRole(c.Request.Context(), role)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.BaseHandler.List(c, users, len(users))
		return
	}

	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, users, len(users))
}

// RegisterRoutes registers directory routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
	}
}
