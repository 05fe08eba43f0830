package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medical specialties a shift can be posted for. The platform serves Thai
// hospitals, so the canonical values are the Thai position names.
const (
	PositionGeneralPractitioner = "แพทย์ทั่วไป"
	PositionInternalMedicine    = "แพทย์อายุรกรรม"
	PositionSurgery             = "แพทย์ศัลยกรรม"
	PositionPediatrics          = "แพทย์กุมารเวชศาสตร์"
	PositionObstetrics          = "แพทย์สูติ-นรีเวชกรรม"
	PositionEmergencyMedicine   = "แพทย์ฉุกเฉิน"
	PositionAnesthesiology      = "แพทย์วิสัญญีวิทยา"
	PositionRadiology           = "แพทย์รังสีวิทยา"
	PositionPathology           = "แพทย์พยาธิวิทยา"
	PositionPsychiatry          = "แพทย์จิตเวชศาสตร์"
)

// DefaultContactMethod is used when a posting doctor does not pick one.
const DefaultContactMethod = "แชทในแพลตฟอร์ม"

var ShiftPositions = []string{
	PositionGeneralPractitioner,
	PositionInternalMedicine,
	PositionSurgery,
	PositionPediatrics,
	PositionObstetrics,
	PositionEmergencyMedicine,
	PositionAnesthesiology,
	PositionRadiology,
	PositionPathology,
	PositionPsychiatry,
}

// ValidPosition reports whether p is one of the enumerated specialties.
func ValidPosition(p string) bool {
	for _, v := range ShiftPositions {
		if v == p {
			return true
		}
	}
	return false
}

type Shift struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID      primitive.ObjectID `bson:"doctor_id" json:"doctor_id"`
	DoctorName    string             `bson:"doctor_name" json:"doctor_name"`
	Position      string             `bson:"position" json:"position"`
	ShiftDate     string             `bson:"shift_date" json:"shift_date"` // YYYY-MM-DD
	StartTime     string             `bson:"start_time" json:"start_time"` // HH:MM
	EndTime       string             `bson:"end_time" json:"end_time"`     // HH:MM
	HospitalName  string             `bson:"hospital_name" json:"hospital_name"`
	Location      string             `bson:"location" json:"location"`
	Compensation  float64            `bson:"compensation" json:"compensation"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Requirements  string             `bson:"requirements,omitempty" json:"requirements,omitempty"`
	ContactMethod string             `bson:"contact_method" json:"contact_method"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
