package handlers

import (
	"net/http"

	"cmsadmin/internal/http/middleware"
	"cmsadmin/internal/services"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Service services.AuthService
}

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h Auth) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	login := req.Login
	if login == "" {
		login = req.Email
	}
	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)
	token, who, err := svc.Login(c.Request.Context(), login, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": who})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register
func (h Auth) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Service
	svc.RequestID = middleware.GetRequestID(c)
	who, err := svc.Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, who)
}

// GET /api/auth/me
func (h Auth) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userId": middleware.UserID(c),
		"role":   middleware.UserRole(c),
	})
}
