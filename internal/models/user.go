package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a registered account can hold.
const (
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

// Approval states for a doctor account. Every doctor starts out pending and
// only an admin moves it to approved or rejected.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string             `bson:"email" json:"email"`
	Password             string             `bson:"password" json:"-"` // Hide from JSON responses
	FirstName            string             `bson:"first_name" json:"first_name"`
	LastName             string             `bson:"last_name" json:"last_name"`
	PhoneNumber          string             `bson:"phone_number" json:"phone_number"`
	MedicalLicenseNumber string             `bson:"medical_license_number" json:"medical_license_number"`
	Role                 string             `bson:"role" json:"role"`
	ApprovalStatus       string             `bson:"approval_status" json:"approval_status"`
	LicenseImagePath     string             `bson:"license_image_path,omitempty" json:"license_image_path,omitempty"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	ApprovedAt           *time.Time         `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	ApprovedBy           string             `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
}

// FullName is what gets stamped onto shifts the doctor posts.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsApproved() bool {
	return u.ApprovalStatus == ApprovalApproved
}
