package data

// Partition holding every inventory document.
const INVENTORY_COLLECTION = "Inventory"

type ItemDTO struct {
	PK       string   `dynamodbav:"PK"`
	SK       string   `dynamodbav:"SK"`
	ItemName string   `dynamodbav:"item_name"`
	PlacedAt string   `dynamodbav:"placed_at"`
	UseBy    string   `dynamodbav:"use_by"`
	Price    *float64 `dynamodbav:"price,omitempty"`
	Quantity *float64 `dynamodbav:"quantity,omitempty"`
	BoughtOn *string  `dynamodbav:"bought_on,omitempty"`
	Category string   `dynamodbav:"category"`
	Status   string   `dynamodbav:"status"`
}

type ItemInputDTO struct {
	ItemName *string  `dynamodbav:"item_name"`
	PlacedAt *string  `dynamodbav:"placed_at"`
	UseBy    *string  `dynamodbav:"use_by"`
	Price    *float64 `dynamodbav:"price"`
	Quantity *float64 `dynamodbav:"quantity"`
	BoughtOn *string  `dynamodbav:"bought_on"`
	Category *string  `dynamodbav:"category"`
	Status   *string  `dynamodbav:"status"`
}

// Attributes returns the non-null fields of the input keyed by attribute name.
func (in ItemInputDTO) Attributes() map[string]interface{} {
	attributes := make(map[string]interface{}, 8)
	if in.ItemName != nil {
		attributes["item_name"] = *in.ItemName
	}
	if in.PlacedAt != nil {
		attributes["placed_at"] = *in.PlacedAt
	}
	if in.UseBy != nil {
		attributes["use_by"] = *in.UseBy
	}
	if in.Price != nil {
		attributes["price"] = *in.Price
	}
	if in.Quantity != nil {
		attributes["quantity"] = *in.Quantity
	}
	if in.BoughtOn != nil {
		attributes["bought_on"] = *in.BoughtOn
	}
	if in.Category != nil {
		attributes["category"] = *in.Category
	}
	if in.Status != nil {
		attributes["status"] = *in.Status
	}
	return attributes
}

// Attributes mirrors ItemInputDTO.Attributes for a stored document; unset
// optional fields are left out.
func (dto ItemDTO) Attributes() map[string]interface{} {
	return ItemInputDTO{
		ItemName: &dto.ItemName,
		PlacedAt: &dto.PlacedAt,
		UseBy:    &dto.UseBy,
		Price:    dto.Price,
		Quantity: dto.Quantity,
		BoughtOn: dto.BoughtOn,
		Category: &dto.Category,
		Status:   &dto.Status,
	}.Attributes()
}

// Apply returns a copy of the document with every non-null input field replaced.
func (dto ItemDTO) Apply(in ItemInputDTO) ItemDTO {
	if in.ItemName != nil {
		dto.ItemName = *in.ItemName
	}
	if in.PlacedAt != nil {
		dto.PlacedAt = *in.PlacedAt
	}
	if in.UseBy != nil {
		dto.UseBy = *in.UseBy
	}
	if in.Price != nil {
		price := *in.Price
		dto.Price = &price
	}
	if in.Quantity != nil {
		quantity := *in.Quantity
		dto.Quantity = &quantity
	}
	if in.BoughtOn != nil {
		boughtOn := *in.BoughtOn
		dto.BoughtOn = &boughtOn
	}
	if in.Category != nil {
		dto.Category = *in.Category
	}
	if in.Status != nil {
		dto.Status = *in.Status
	}
	return dto
}

type ItemDataService interface {
	Repository[ItemDTO, ItemInputDTO]
}
