package aws

import (
	"context"
	"log"
	"travelhub/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESMessageInput converts a mail input into the SES request shape.
func SESMessageInput(input *lib.SendMailInput) *ses.SendEmailInput {
	body := &types.Body{}
	content := &types.Content{Data: aws.String(input.Body), Charset: aws.String("UTF-8")}
	if input.Html {
		body.Html = content
	} else {
		body.Text = content
	}
	out := &ses.SendEmailInput{
		Source:      aws.String(input.From),
		Destination: &types.Destination{ToAddresses: input.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(input.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if input.FromName != "" {
		out.Source = aws.String(input.FromName + " <" + input.From + ">")
	}
	if input.ReplyTo != "" {
		out.ReplyToAddresses = []string{input.ReplyTo}
	}
	return out
}

func SESSendMail(ctx context.Context, input *lib.SendMailInput) error {
	cfg, err := lib.AWSGetSdkConfig()
	if err != nil {
		return err
	}
	out, err := ses.NewFromConfig(*cfg).SendEmail(ctx, SESMessageInput(input))
	if err != nil {
		log.Printf("Error sending email: %s\n", err.Error())
		return err
	}
	log.Printf("Sent email with id: %s\n", *out.MessageId)
	return nil
}
