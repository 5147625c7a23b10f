package handlers

import (
	"encoding/json"
	"log"

	"github.com/AnnaHort/phonebook-auth/internal/dto"
)

type VerifyMailSender interface {
	SendVerifyEmail(to string, token string) error
}

type MailHandler struct {
	MailService VerifyMailSender
}

func NewMailHandler(ms VerifyMailSender) *MailHandler {
	return &MailHandler{MailService: ms}
}

func (h *MailHandler) HandleMessage(message string) error {
	var event dto.VerifyEmailEvent

	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s", message)
		return err
	}

	log.Printf("verify email event received: user_id=%d email=%s",
		event.UserID, event.Email)

	return h.MailService.SendVerifyEmail(event.Email, event.Token)
}
