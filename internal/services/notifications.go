package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/doctorshift/marketplace-api/internal/models"
)

type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// SendApprovalResultSMS tells a doctor their registration was approved or
// rejected. Admin decisions are rare enough that the free Textbelt tier
// covers them.
func (s *NotificationService) SendApprovalResultSMS(doctor *models.User) {
	if doctor.PhoneNumber == "" {
		log.Println("SMS not sent: doctor has no phone number.")
		return
	}

	var smsBody string
	if doctor.ApprovalStatus == models.ApprovalApproved {
		smsBody = fmt.Sprintf("สวัสดี %s บัญชีของคุณได้รับการอนุมัติแล้ว เข้าสู่ระบบเพื่อเริ่มใช้งานได้เลย", doctor.FullName())
	} else {
		smsBody = fmt.Sprintf("สวัสดี %s บัญชีของคุณไม่ผ่านการตรวจสอบ กรุณาติดต่อทีมงาน", doctor.FullName())
	}

	// Send in a goroutine so it doesn't block the API response
	go sendSmsWithTextbelt(doctor.PhoneNumber, smsBody)
}

// --- Private Helper Function for Textbelt ---
func sendSmsWithTextbelt(phone, message string) {
	textbeltKey := os.Getenv("TEXTBELT_API_KEY")

	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		log.Printf("Failed to send Textbelt request for number %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	success, _ := result["success"].(bool)
	if !success {
		errorMsg, _ := result["error"].(string)
		log.Printf("Failed to send SMS via Textbelt to %s. Reason: %s", phone, errorMsg)
	} else {
		log.Printf("Successfully sent SMS via Textbelt to %s", phone)
	}
}
