package main

import (
	"context"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	"philcali.me/inventory/internal/config"
	"philcali.me/inventory/internal/events"
	"philcali.me/inventory/internal/logger"
	"philcali.me/inventory/internal/sns/services"
)

type App struct {
	Handlers []events.EventFilter
	Logger   zerolog.Logger
}

func NewApp(ctx context.Context) App {
	cfg, err := config.LoadStreamConfig()
	if err != nil {
		log := logger.Bootstrap()
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg)
	sdkConfig, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Database.Region))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS config")
	}
	publisher := services.NewNotificationService(sns.NewFromConfig(sdkConfig), cfg.Notifications.TopicArn)
	return App{
		Handlers: []events.EventFilter{
			events.DefaultItemChangeHandler(publisher),
		},
		Logger: log,
	}
}

// HandleRequest never fails the batch; a failing record is logged and the
// remaining records are still handled.
func (app *App) HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	for _, record := range event.Records {
		for _, handler := range app.Handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				app.Logger.Error().
					Err(err).
					Str("event_id", record.EventID).
					Str("event_name", record.EventName).
					Msg("failed to handle record")
				break
			}
		}
	}
	return nil
}

func main() {
	app := NewApp(context.Background())
	lambda.Start(app.HandleRequest)
}
