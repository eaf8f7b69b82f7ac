package items

import (
	"github.com/google/uuid"
	"philcali.me/inventory/internal/data"
	"philcali.me/inventory/internal/dynamodb/connection"
	"philcali.me/inventory/internal/dynamodb/services"
)

func NewItemServiceWithClient(tableName string, client services.DynamoDBAPI) data.ItemDataService {
	return &services.RepositoryDynamoDBService[data.ItemDTO, data.ItemInputDTO]{
		DynamoDB:  client,
		TableName: tableName,
		Name:      data.INVENTORY_COLLECTION,
		Resource:  "Item",
		Shim: func(pk, sk string) data.ItemDTO {
			return data.ItemDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.ItemInputDTO, pk, sk string) data.ItemDTO {
			return data.ItemDTO{PK: pk, SK: sk}.Apply(input)
		},
		OnUpdate: func(input data.ItemInputDTO) map[string]interface{} {
			return input.Attributes()
		},
		ParseId: func(id string) error {
			_, err := uuid.Parse(id)
			return err
		},
	}
}

func NewItemService(handle *connection.Handle) data.ItemDataService {
	return NewItemServiceWithClient(handle.TableName, handle.Client)
}
