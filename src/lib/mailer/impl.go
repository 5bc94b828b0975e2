package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"travelhub/src/config"
	"travelhub/src/lib"

	awslib "travelhub/src/lib/aws"
)

const (
	TRANSPORT_SMTP = "smtp"
	TRANSPORT_SES  = "ses"
)

// QueuedMail is the body written to the mail queue.
type QueuedMail struct {
	From     string   `json:"from"`
	FromName string   `json:"from-name"`
	To       []string `json:"to"`
	ReplyTo  string   `json:"reply-to,omitempty"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	Html     bool     `json:"html"`
}

func queuedMail(input *lib.SendMailInput) QueuedMail {
	return QueuedMail{
		From:     input.From,
		FromName: input.FromName,
		To:       input.To,
		ReplyTo:  input.ReplyTo,
		Subject:  input.Subject,
		Body:     input.Body,
		Html:     input.Html,
	}
}

// Deliver sends a message through the configured transport. A configured
// queue takes precedence over sending inline.
func Deliver(ctx context.Context, mc config.MailConfig, input *lib.SendMailInput) error {
	if input.From == "" {
		input.From = mc.From
	}
	if input.FromName == "" {
		input.FromName = mc.FromName
	}
	if mc.Queue != "" {
		body, err := json.Marshal(queuedMail(input))
		if err != nil {
			return err
		}
		if err := lib.SQSProduceMessage(ctx, mc.Queue, string(body)); err != nil {
			return fmt.Errorf("error sending message to queue: %s", err.Error())
		}
		return nil
	}
	switch mc.Transport {
	case TRANSPORT_SES:
		return awslib.SESSendMail(ctx, input)
	case TRANSPORT_SMTP, "":
		return lib.SendMail(input)
	}
	return fmt.Errorf("unknown mail transport: %s", mc.Transport)
}
