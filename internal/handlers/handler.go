package handlers

import (
	"net/http"

	"github.com/doctorshift/marketplace-api/internal/models"
	"github.com/doctorshift/marketplace-api/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Handler struct {
	DB              *mongo.Database
	Uploads         *services.UploadService
	NotificationSvc *services.NotificationService
}

func NewHandler(db *mongo.Database, uploads *services.UploadService, notificationSvc *services.NotificationService) *Handler {
	return &Handler{
		DB:              db,
		Uploads:         uploads,
		NotificationSvc: notificationSvc,
	}
}

// currentUser loads the authenticated user's document. The token only proves
// identity; role and approval status always come from the database.
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	userIDHex, exists := c.Get("userID")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return nil, false
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex.(string))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return nil, false
	}

	var user models.User
	err = h.DB.Collection("users").FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return nil, false
	}

	return &user, true
}

// approvedUser is currentUser plus the approval gate shared by every shift
// route. Unapproved doctors can log in and see their status but nothing else.
func (h *Handler) approvedUser(c *gin.Context) (*models.User, bool) {
	user, ok := h.currentUser(c)
	if !ok {
		return nil, false
	}
	if !user.IsApproved() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "User not approved yet"})
		return nil, false
	}
	return user, true
}

// adminUser requires an approved account with the admin role.
func (h *Handler) adminUser(c *gin.Context) (*models.User, bool) {
	user, ok := h.currentUser(c)
	if !ok {
		return nil, false
	}
	if user.Role != models.RoleAdmin || !user.IsApproved() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Admin access required"})
		return nil, false
	}
	return user, true
}
