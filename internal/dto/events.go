package dto

// EventVerifyEmail is the Kafka message key for verification mail requests.
const EventVerifyEmail = "user.verify_email"

type VerifyEmailEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}
