package items

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/inventory/internal/data"
	"philcali.me/inventory/internal/routes"
	"philcali.me/inventory/internal/routes/util"
)

type ItemService struct {
	data data.ItemDataService
}

func NewRoute(data data.ItemDataService) routes.Service {
	return &ItemService{
		data: data,
	}
}

func (is *ItemService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/":             is.ListItems,
		"POST:/items":       is.CreateItem,
		"GET:/items/:id":    is.GetItem,
		"PUT:/items/:id":    is.UpdateItem,
		"DELETE:/items/:id": is.DeleteItem,
	}
}

// Store calls run to completion once started, even if the caller goes away.
func storeContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func (is *ItemService) ListItems(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	items, err := is.data.List(storeContext(ctx))
	return util.SerializeResponseOK(util.ConvertList(NewItem), items, err)
}

func (is *ItemService) GetItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := is.data.Get(storeContext(ctx), util.RequestParam(ctx, "id"))
	return util.SerializeResponseOK(NewItem, item, err)
}

func (is *ItemService) CreateItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ItemInput{}
	if err := util.BindAndValidate(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := is.data.Create(storeContext(ctx), input.ToData())
	return util.SerializeResponseCreated(NewItem, created, err)
}

// UpdateItem takes a partial payload; required tags do not apply here.
func (is *ItemService) UpdateItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ItemInput{}
	if err := util.Bind(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := is.data.Update(storeContext(ctx), util.RequestParam(ctx, "id"), input.ToData())
	return util.SerializeResponseOK(NewItem, item, err)
}

func (is *ItemService) DeleteItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := is.data.Delete(storeContext(ctx), util.RequestParam(ctx, "id"))
	return util.SerializeResponseNoContent(err)
}
