package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/inventory/internal/data"
	"philcali.me/inventory/internal/notifications"
)

var itemActions = map[string]string{
	"INSERT": "created",
	"MODIFY": "updated",
	"REMOVE": "deleted",
}

type ItemChangeHandler struct {
	Notifications notifications.NotificationService
}

func (ih *ItemChangeHandler) Filter(record events.DynamoDBEventRecord) bool {
	if _, ok := itemActions[record.EventName]; !ok {
		return false
	}
	pk := stringAttribute(record.Change.Keys, "PK")
	if pk == "" {
		pk = stringAttribute(recordImage(record), "PK")
	}
	return pk == data.INVENTORY_COLLECTION
}

func FormatItemChange(record events.DynamoDBEventRecord) string {
	image := recordImage(record)
	id := stringAttribute(record.Change.Keys, "SK")
	if id == "" {
		id = stringAttribute(image, "SK")
	}
	return fmt.Sprintf("Item %s (%s) was %s", id, stringAttribute(image, "item_name"), itemActions[record.EventName])
}

func (ih *ItemChangeHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	_, err := ih.Notifications.Publish(ctx, notifications.PublishInput{
		Subject: fmt.Sprintf("Item %s", itemActions[record.EventName]),
		Message: FormatItemChange(record),
	})
	return err
}

func DefaultItemChangeHandler(notifications notifications.NotificationService) *ItemChangeHandler {
	return &ItemChangeHandler{
		Notifications: notifications,
	}
}
