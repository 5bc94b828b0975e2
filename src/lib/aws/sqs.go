package aws

import (
	"context"
	"log"
	"strings"
	"travelhub/src/lib"
	"travelhub/src/types"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSConsumer long-polls a queue and hands each message body to handler.
type SQSConsumer struct {
	Name    string
	handler types.Handler
}

func NewSQSConsumer(queue string, handler types.Handler) *SQSConsumer {
	return &SQSConsumer{
		Name:    queue,
		handler: handler,
	}
}

// Listen runs until ctx is cancelled.
func (s *SQSConsumer) Listen(ctx context.Context) {
	go func() {
		qname := s.Name
		client := lib.AWSGetSQSClient()
		if client == nil {
			return
		}
		qurl, err := lib.SQSGetQueueURL(ctx, client, qname)
		if err != nil {
			return
		}
		log.Printf("%s: Listening for messages...", qname)
		messagesChan := make(chan *sqstypes.Message, 10)
		go func(chn chan<- *sqstypes.Message) {
			defer close(chn)
			for {
				output, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
					QueueUrl:            qurl,
					WaitTimeSeconds:     20,
					MaxNumberOfMessages: 10,
				})
				if err != nil {
					if ctx.Err() == nil {
						log.Printf("[SQS] Error receiving messages: %s\n", err.Error())
					}
					return
				}
				for _, m := range output.Messages {
					chn <- &m
				}
			}
		}(messagesChan)

		for m := range messagesChan {
			body := strings.Clone(*m.Body)
			go s.handler(body)
			go lib.SQSDeleteMessage(client, qurl, m)
		}
	}()
}
