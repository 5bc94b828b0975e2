package aws

import (
	"context"
	"log"
	"travelhub/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSTopic publishes broadcast payloads to a topic. Each API instance
// receives them through its own SQS queue subscribed to the topic.
type SNSTopic struct {
	ARN   string
	inner *sns.Client
}

func NewSNSTopic(arn string) *SNSTopic {
	cfg, err := lib.AWSGetSdkConfig()
	if err != nil {
		log.Printf("Error loading default config: %s\n", err.Error())
		return nil
	}
	return &SNSTopic{ARN: arn, inner: sns.NewFromConfig(*cfg)}
}

func (t *SNSTopic) Publish(ctx context.Context, payload []byte) error {
	_, err := t.inner.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(t.ARN),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		log.Printf("[SNS] Error publishing to %s: %s\n", t.ARN, err.Error())
	}
	return err
}

// Subscribe attaches an SQS queue to the topic with raw delivery so queue
// bodies carry the payload unchanged.
func (t *SNSTopic) Subscribe(ctx context.Context, queueArn string) (*string, error) {
	out, err := t.inner.Subscribe(ctx, &sns.SubscribeInput{
		Protocol:   aws.String("sqs"),
		TopicArn:   aws.String(t.ARN),
		Endpoint:   aws.String(queueArn),
		Attributes: map[string]string{"RawMessageDelivery": "true"},
	})
	if err != nil {
		log.Printf("Error subscribing to topic [%s]: %s\n", t.ARN, err.Error())
		return nil, err
	}
	return out.SubscriptionArn, nil
}
