package main

import (
	"log"

	"github.com/purepath/account-service/config"
	"github.com/purepath/account-service/infra/queue"
	"github.com/purepath/account-service/internal/mailer"
)

func main() {
	cfg := config.LoadConfig()

	log.Println("Mail Service starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	mailService := mailer.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	handler := mailer.NewMailHandler(mailService)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	log.Println("Mail Service listening for events...")
	consumer.Listen()
}
