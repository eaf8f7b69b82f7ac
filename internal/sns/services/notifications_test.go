package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/inventory/internal/notifications"
)

type stubSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (s *stubSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.inputs = append(s.inputs, params)
	if s.err != nil {
		return nil, s.err
	}
	return &sns.PublishOutput{MessageId: aws.String("message-1")}, nil
}

func TestNotificationSNSService(t *testing.T) {
	topicArn := "arn:aws:sns:us-east-1:000000000000:inventory"

	t.Run("Publish", func(t *testing.T) {
		client := &stubSNS{}
		service := NewNotificationService(client, topicArn)
		output, err := service.Publish(context.TODO(), notifications.PublishInput{
			Subject: "Item created",
			Message: "Item abc (Milk) was created",
		})
		if err != nil {
			t.Fatalf("Failed to publish: %v", err)
		}
		if output.MessageId != "message-1" {
			t.Fatalf("Expected message-1, got %s", output.MessageId)
		}
		if len(client.inputs) != 1 {
			t.Fatalf("Expected a single publish, got %d", len(client.inputs))
		}
		sent := client.inputs[0]
		if aws.ToString(sent.TopicArn) != topicArn || aws.ToString(sent.Subject) != "Item created" {
			t.Fatalf("Unexpected publish input %v", sent)
		}
	})

	t.Run("PublishWithoutSubject", func(t *testing.T) {
		client := &stubSNS{}
		service := NewNotificationService(client, topicArn)
		if _, err := service.Publish(context.TODO(), notifications.PublishInput{Message: "hello"}); err != nil {
			t.Fatalf("Failed to publish: %v", err)
		}
		if client.inputs[0].Subject != nil {
			t.Fatalf("Expected no subject, got %s", aws.ToString(client.inputs[0].Subject))
		}
	})

	t.Run("PublishFailure", func(t *testing.T) {
		cause := errors.New("throttled")
		service := NewNotificationService(&stubSNS{err: cause}, topicArn)
		_, err := service.Publish(context.TODO(), notifications.PublishInput{Message: "hello"})
		if !errors.Is(err, cause) {
			t.Fatalf("Expected wrapped cause, got %v", err)
		}
	})
}
