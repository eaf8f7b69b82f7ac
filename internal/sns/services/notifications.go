package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/inventory/internal/notifications"
)

// SNSAPI is the slice of the SNS client used for change messages.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type NotificationSNSService struct {
	Sns      SNSAPI
	TopicArn string
}

func NewNotificationService(client SNSAPI, topicArn string) notifications.NotificationService {
	return &NotificationSNSService{
		Sns:      client,
		TopicArn: topicArn,
	}
}

func (n *NotificationSNSService) Publish(ctx context.Context, input notifications.PublishInput) (*notifications.PublishOutput, error) {
	params := &sns.PublishInput{
		Message:  aws.String(input.Message),
		TopicArn: aws.String(n.TopicArn),
	}
	if input.Subject != "" {
		params.Subject = aws.String(input.Subject)
	}
	output, err := n.Sns.Publish(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to publish to %s: %w", n.TopicArn, err)
	}
	return &notifications.PublishOutput{
		MessageId: aws.ToString(output.MessageId),
	}, nil
}
