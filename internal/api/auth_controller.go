package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yaara40/academic-department-website-sub000/internal/service"
)

// AuthController handles admin panel login.
type AuthController struct {
	authSvc service.AuthService
}

// NewAuthController creates an auth controller.
func NewAuthController(authSvc service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Login exchanges credentials for a session token.
func (ac *AuthController) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	res := ac.authSvc.Login(c.Request.Context(), &req)
	if !res.Success {
		status := http.StatusUnauthorized
		for _, msg := range res.Errors {
			if msg == service.MsgStorageFailure {
				status = http.StatusInternalServerError
			}
		}
		Error(c, status, "login failed", res.Errors...)
		return
	}
	Success(c, gin.H{"token": res.Token})
}
