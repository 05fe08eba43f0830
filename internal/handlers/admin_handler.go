package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/doctorshift/marketplace-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPendingUsers lists doctor accounts waiting for license review, oldest
// registration first.
func (h *Handler) GetPendingUsers(c *gin.Context) {
	if _, ok := h.adminUser(c); !ok {
		return
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	collection := h.DB.Collection("users")
	cursor, err := collection.Find(c.Request.Context(), bson.M{"approval_status": models.ApprovalPending}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve pending users"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var users []models.User
	if err = cursor.All(c.Request.Context(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to decode pending users"})
		return
	}
	if users == nil {
		users = make([]models.User, 0)
	}

	c.JSON(http.StatusOK, users)
}

// ApproveUser marks a doctor approved and records who decided and when.
func (h *Handler) ApproveUser(c *gin.Context) {
	admin, ok := h.adminUser(c)
	if !ok {
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}

	collection := h.DB.Collection("users")
	result, err := collection.UpdateOne(
		c.Request.Context(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"approval_status": models.ApprovalApproved,
			"approved_at":     time.Now().UTC(),
			"approved_by":     admin.ID.Hex(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to approve user"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	h.notifyApprovalResult(c, userID)
	c.JSON(http.StatusOK, gin.H{"message": "User approved successfully"})
}

// RejectUser marks a doctor rejected. The account keeps existing so the
// doctor sees the decision on their next login.
func (h *Handler) RejectUser(c *gin.Context) {
	if _, ok := h.adminUser(c); !ok {
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}

	collection := h.DB.Collection("users")
	result, err := collection.UpdateOne(
		c.Request.Context(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"approval_status": models.ApprovalRejected}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to reject user"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	h.notifyApprovalResult(c, userID)
	c.JSON(http.StatusOK, gin.H{"message": "User rejected"})
}

func (h *Handler) notifyApprovalResult(c *gin.Context, userID primitive.ObjectID) {
	var doctor models.User
	err := h.DB.Collection("users").FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&doctor)
	if err != nil {
		log.Printf("notifyApprovalResult: could not load user %s: %v", userID.Hex(), err)
		return
	}
	h.NotificationSvc.SendApprovalResultSMS(&doctor)
}

// ExportReport streams an xlsx workbook with one sheet of registered users
// and one of posted shifts, for offline review.
func (h *Handler) ExportReport(c *gin.Context) {
	if _, ok := h.adminUser(c); !ok {
		return
	}

	ctx := c.Request.Context()

	var users []models.User
	cursor, err := h.DB.Collection("users").Find(ctx, bson.M{})
	if err == nil {
		err = cursor.All(ctx, &users)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve users"})
		return
	}

	var shifts []models.Shift
	cursor, err = h.DB.Collection("shifts").Find(ctx, bson.M{})
	if err == nil {
		err = cursor.All(ctx, &shifts)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to retrieve shifts"})
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	usersSheet := f.GetSheetName(f.GetActiveSheetIndex())
	_ = f.SetSheetName(usersSheet, "Users")

	userHeader := []interface{}{"id", "email", "first_name", "last_name", "phone_number", "medical_license_number", "role", "approval_status", "created_at"}
	if err := f.SetSheetRow("Users", "A1", &userHeader); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to build report"})
		return
	}
	for i, u := range users {
		row := []interface{}{
			u.ID.Hex(), u.Email, u.FirstName, u.LastName,
			u.PhoneNumber, u.MedicalLicenseNumber, u.Role,
			u.ApprovalStatus, u.CreatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Users", cell, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to build report"})
			return
		}
	}

	if _, err := f.NewSheet("Shifts"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to build report"})
		return
	}
	shiftHeader := []interface{}{"id", "doctor_name", "position", "shift_date", "start_time", "end_time", "hospital_name", "location", "compensation", "is_active"}
	if err := f.SetSheetRow("Shifts", "A1", &shiftHeader); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to build report"})
		return
	}
	for i, s := range shifts {
		row := []interface{}{
			s.ID.Hex(), s.DoctorName, s.Position, s.ShiftDate,
			s.StartTime, s.EndTime, s.HospitalName, s.Location,
			s.Compensation, s.IsActive,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Shifts", cell, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to build report"})
			return
		}
	}

	filename := fmt.Sprintf("doctorshift-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Printf("ExportReport: write failed: %v", err)
	}
}
