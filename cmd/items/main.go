package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"philcali.me/inventory/internal/config"
	"philcali.me/inventory/internal/dynamodb/connection"
	itemData "philcali.me/inventory/internal/dynamodb/items"
	"philcali.me/inventory/internal/logger"
	"philcali.me/inventory/internal/routes"
	"philcali.me/inventory/internal/routes/items"
)

type App struct {
	Router *routes.Router
	Handle *connection.Handle
}

func NewApp(ctx context.Context) App {
	cfg, err := config.LoadConfig()
	if err != nil {
		log := logger.Bootstrap()
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg)
	handle, err := connection.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("table", cfg.Database.Name).Msg("failed to open database")
	}
	return App{
		Router: routes.NewRouter(log, items.NewRoute(itemData.NewItemService(handle))),
		Handle: handle,
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app := NewApp(context.Background())
	lambda.StartWithOptions(app.HandleRequest, lambda.WithEnableSIGTERM(func() {
		app.Handle.Close()
	}))
}
