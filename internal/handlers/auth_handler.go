package handlers

import (
	"vinspect/internal/models"
	"vinspect/internal/services"
	"vinspect/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new inspector account
func (h *AuthHandler) Register(c *gin.Context) {
	var request services.RegisterInspectorRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.RegisterInspector(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Inspector registered successfully", response)
}

// Login authenticates an inspector
func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}

// Logout revokes the current token
func (h *AuthHandler) Logout(c *gin.Context) {
	token, exists := c.Get("token")
	if !exists {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token.(string)); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Logout successful", nil)
}

// RefreshToken issues a new token pair from a refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Token refreshed", pair)
}

// ChangePassword updates the authenticated inspector's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	inspectorID, ok := inspectorFromContext(c)
	if !ok {
		return
	}

	var request services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), inspectorID, &request); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Password changed successfully", nil)
}

// GetProfile returns the authenticated inspector
func (h *AuthHandler) GetProfile(c *gin.Context) {
	inspectorID, ok := inspectorFromContext(c)
	if !ok {
		return
	}

	inspector, err := h.authService.GetInspector(c.Request.Context(), inspectorID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspector profile", inspector)
}

// ListInspectors lists inspectors with pagination (supervisor only)
func (h *AuthHandler) ListInspectors(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	inspectors, total, err := h.authService.ListInspectors(c.Request.Context(), params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Inspectors retrieved", inspectors, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(inspectors),
	})
}

// SetInspectorStatus activates, deactivates or suspends an inspector (supervisor only)
func (h *AuthHandler) SetInspectorStatus(c *gin.Context) {
	inspectorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspector ID")
		return
	}

	var request struct {
		Status models.InspectorStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	inspector, err := h.authService.SetInspectorStatus(c.Request.Context(), inspectorID, request.Status)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspector status updated", inspector)
}

// UpdateInspectorRole changes an inspector's role (supervisor only)
func (h *AuthHandler) UpdateInspectorRole(c *gin.Context) {
	inspectorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspector ID")
		return
	}

	var request struct {
		Role models.InspectorRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	inspector, err := h.authService.UpdateInspectorRole(c.Request.Context(), inspectorID, request.Role)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspector role updated", inspector)
}

// inspectorFromContext reads the authenticated inspector ID set by AuthRequired.
func inspectorFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("inspector_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	inspectorID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return inspectorID, true
}
