package main

import (
	"log"

	"github.com/AnnaHort/phonebook-auth/config"
	"github.com/AnnaHort/phonebook-auth/infra/queue"
	"github.com/AnnaHort/phonebook-auth/internal/api/rest/handlers"
	"github.com/AnnaHort/phonebook-auth/internal/services"
)

func main() {
	cfg := config.LoadConfig()

	log.Println("Mailer starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	mailService := services.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.MailSubject,
		cfg.VerifyBaseURL,
	)

	handler := handlers.NewMailHandler(mailService)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	log.Println("Mailer listening for events...")
	consumer.Listen()
}
