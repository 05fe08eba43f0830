package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/doctorshift/marketplace-api/internal/models"
	"github.com/doctorshift/marketplace-api/internal/services"
	"github.com/doctorshift/marketplace-api/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RegisterUserRequest struct {
	Email                string `form:"email" binding:"required,email"`
	Password             string `form:"password" binding:"required,min=8"`
	FirstName            string `form:"first_name" binding:"required"`
	LastName             string `form:"last_name" binding:"required"`
	PhoneNumber          string `form:"phone_number" binding:"required"`
	MedicalLicenseNumber string `form:"medical_license_number" binding:"required"`
}

// RegisterUser creates a pending doctor account from a multipart form that
// carries the profile fields plus a license_image file. The account stays
// locked behind the approval gate until an admin reviews the license.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	licenseImage, err := c.FormFile("license_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "License image is required"})
		return
	}

	collection := h.DB.Collection("users")
	count, err := collection.CountDocuments(c.Request.Context(), bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}

	imagePath, err := h.Uploads.SaveLicenseImage(c, licenseImage)
	if err != nil {
		if errors.Is(err, services.ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "File must be an image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store license image"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:                   primitive.NewObjectID(),
		Email:                req.Email,
		Password:             hashedPassword,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		PhoneNumber:          req.PhoneNumber,
		MedicalLicenseNumber: req.MedicalLicenseNumber,
		Role:                 models.RoleDoctor,
		ApprovalStatus:       models.ApprovalPending,
		LicenseImagePath:     imagePath,
		CreatedAt:            time.Now().UTC(),
	}

	if _, err := collection.InsertOne(c.Request.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}

	log.Printf("RegisterUser: new pending doctor %s", user.Email)
	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues a bearer token together with the
// user document the client keeps in its session store.
func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request"})
		return
	}

	var user models.User
	collection := h.DB.Collection("users")
	err := collection.FindOne(c.Request.Context(), bson.M{"email": loginReq.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not generate token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// GetCurrentUser returns the identity behind the bearer token. The client
// calls this once on startup to rebuild its session from a persisted token.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateAdmin bootstraps the first admin account. Refuses once any admin
// exists, so it is safe to leave enabled.
func (h *Handler) CreateAdmin(c *gin.Context) {
	collection := h.DB.Collection("users")
	count, err := collection.CountDocuments(c.Request.Context(), bson.M{"role": models.RoleAdmin})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create admin"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Admin already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword("admin123")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create admin"})
		return
	}

	now := time.Now().UTC()
	admin := models.User{
		ID:                   primitive.NewObjectID(),
		Email:                "admin@doctorshift.com",
		Password:             hashedPassword,
		FirstName:            "Admin",
		LastName:             "System",
		PhoneNumber:          "0000000000",
		MedicalLicenseNumber: "ADMIN001",
		Role:                 models.RoleAdmin,
		ApprovalStatus:       models.ApprovalApproved,
		CreatedAt:            now,
		ApprovedAt:           &now,
	}

	if _, err := collection.InsertOne(c.Request.Context(), admin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create admin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin created successfully",
		"email":   admin.Email,
	})
}
