package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/doctorshift/marketplace-api/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreateShiftRequest struct {
	Position      string  `json:"position" binding:"required"`
	ShiftDate     string  `json:"shift_date" binding:"required"`
	StartTime     string  `json:"start_time" binding:"required"`
	EndTime       string  `json:"end_time" binding:"required"`
	HospitalName  string  `json:"hospital_name" binding:"required"`
	Location      string  `json:"location" binding:"required"`
	Compensation  float64 `json:"compensation" binding:"min=0"`
	Description   string  `json:"description"`
	Requirements  string  `json:"requirements"`
	ContactMethod string  `json:"contact_method"`
}

// CreateShift posts a new shift on behalf of the authenticated, approved
// doctor. Doctor id and display name are stamped server-side.
func (h *Handler) CreateShift(c *gin.Context) {
	user, ok := h.approvedUser(c)
	if !ok {
		return
	}

	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !models.ValidPosition(req.Position) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown position"})
		return
	}

	contactMethod := req.ContactMethod
	if contactMethod == "" {
		contactMethod = models.DefaultContactMethod
	}

	shift := models.Shift{
		ID:            primitive.NewObjectID(),
		DoctorID:      user.ID,
		DoctorName:    user.FullName(),
		Position:      req.Position,
		ShiftDate:     req.ShiftDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		HospitalName:  req.HospitalName,
		Location:      req.Location,
		Compensation:  req.Compensation,
		Description:   req.Description,
		Requirements:  req.Requirements,
		ContactMethod: contactMethod,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}

	collection := h.DB.Collection("shifts")
	if _, err := collection.InsertOne(c.Request.Context(), shift); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create shift"})
		return
	}

	c.JSON(http.StatusCreated, shift)
}

// GetShifts lists open shifts, oldest date first. Optional query filters:
// position (exact), location (case-insensitive substring), date_from/date_to
// (inclusive on the YYYY-MM-DD shift date).
func (h *Handler) GetShifts(c *gin.Context) {
	if _, ok := h.approvedUser(c); !ok {
		return
	}

	filter := bson.M{"is_active": true}

	if position := c.Query("position"); position != "" {
		filter["position"] = position
	}
	if location := c.Query("location"); location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(location), "$options": "i"}
	}
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		filter["shift_date"] = bson.M{"$gte": dateFrom}
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		if f, ok := filter["shift_date"].(bson.M); ok {
			f["$lte"] = dateTo
		} else {
			filter["shift_date"] = bson.M{"$lte": dateTo}
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "shift_date", Value: 1}})

	collection := h.DB.Collection("shifts")
	cursor, err := collection.Find(c.Request.Context(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve shifts"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var shifts []models.Shift
	if err = cursor.All(c.Request.Context(), &shifts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to decode shifts"})
		return
	}
	if shifts == nil {
		shifts = make([]models.Shift, 0)
	}

	c.JSON(http.StatusOK, shifts)
}

// GetMyShifts lists everything the caller has posted, newest first,
// including shifts that were taken down.
func (h *Handler) GetMyShifts(c *gin.Context) {
	user, ok := h.approvedUser(c)
	if !ok {
		return
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	collection := h.DB.Collection("shifts")
	cursor, err := collection.Find(c.Request.Context(), bson.M{"doctor_id": user.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve shifts"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var shifts []models.Shift
	if err = cursor.All(c.Request.Context(), &shifts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to decode shifts"})
		return
	}
	if shifts == nil {
		shifts = make([]models.Shift, 0)
	}

	c.JSON(http.StatusOK, shifts)
}

// DeleteShift soft-deletes one of the caller's own shifts. The document is
// kept with is_active=false so it still shows in my-shifts history.
func (h *Handler) DeleteShift(c *gin.Context) {
	user, ok := h.approvedUser(c)
	if !ok {
		return
	}

	shiftID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid shift ID"})
		return
	}

	collection := h.DB.Collection("shifts")
	result, err := collection.UpdateOne(
		c.Request.Context(),
		bson.M{"_id": shiftID, "doctor_id": user.ID},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete shift"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Shift not found or not authorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully"})
}
