package items

import (
	"philcali.me/inventory/internal/data"
)

type ItemInput struct {
	ItemName *string  `json:"item_name" validate:"required"`
	PlacedAt *string  `json:"placed_at" validate:"required"`
	UseBy    *string  `json:"use_by" validate:"required"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
	BoughtOn *string  `json:"bought_on"`
	Category *string  `json:"category" validate:"required"`
	Status   *string  `json:"status" validate:"required"`
}

func (in *ItemInput) ToData() data.ItemInputDTO {
	return data.ItemInputDTO{
		ItemName: in.ItemName,
		PlacedAt: in.PlacedAt,
		UseBy:    in.UseBy,
		Price:    in.Price,
		Quantity: in.Quantity,
		BoughtOn: in.BoughtOn,
		Category: in.Category,
		Status:   in.Status,
	}
}

type Item struct {
	Id       string   `json:"id"`
	ItemName string   `json:"item_name"`
	PlacedAt string   `json:"placed_at"`
	UseBy    string   `json:"use_by"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
	BoughtOn *string  `json:"bought_on"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
}

// NewItem exposes the sort key as id; the partition key never leaves storage.
func NewItem(item data.ItemDTO) Item {
	return Item{
		Id:       item.SK,
		ItemName: item.ItemName,
		PlacedAt: item.PlacedAt,
		UseBy:    item.UseBy,
		Price:    item.Price,
		Quantity: item.Quantity,
		BoughtOn: item.BoughtOn,
		Category: item.Category,
		Status:   item.Status,
	}
}
