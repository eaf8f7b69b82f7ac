package test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"philcali.me/inventory/internal/data"
	"philcali.me/inventory/internal/exceptions"
)

// MemoryItemRepository behaves like the DynamoDB backed item service, including
// the "not modified" outcome for identical or missing targets.
type MemoryItemRepository struct {
	mutex sync.Mutex
	order []string
	items map[string]data.ItemDTO

	// Vanish drops an item right after a successful update.
	Vanish bool
}

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items: make(map[string]data.ItemDTO),
	}
}

func (m *MemoryItemRepository) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.items)
}

func (m *MemoryItemRepository) Create(ctx context.Context, input data.ItemInputDTO) (data.ItemDTO, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	id := uuid.NewString()
	item := data.ItemDTO{PK: data.INVENTORY_COLLECTION, SK: id}.Apply(input)
	m.items[id] = item
	m.order = append(m.order, id)
	return item, nil
}

func (m *MemoryItemRepository) Get(ctx context.Context, itemId string) (data.ItemDTO, error) {
	if _, err := uuid.Parse(itemId); err != nil {
		return data.ItemDTO{}, exceptions.MalformedId("Item", itemId)
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	item, ok := m.items[itemId]
	if !ok {
		return item, exceptions.NotFound("Item", itemId)
	}
	return item, nil
}

func (m *MemoryItemRepository) List(ctx context.Context) ([]data.ItemDTO, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	items := make([]data.ItemDTO, 0, len(m.items))
	for _, id := range m.order {
		if item, ok := m.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *MemoryItemRepository) Update(ctx context.Context, itemId string, input data.ItemInputDTO) (data.ItemDTO, error) {
	if _, err := uuid.Parse(itemId); err != nil {
		return data.ItemDTO{}, exceptions.MalformedId("Item", itemId)
	}
	m.mutex.Lock()
	existing, ok := m.items[itemId]
	changes := input.Attributes()
	current := existing.Attributes()
	changed := false
	for name, value := range changes {
		if stored, ok := current[name]; !ok || stored != value {
			changed = true
		}
	}
	if !ok || !changed {
		m.mutex.Unlock()
		return data.ItemDTO{}, exceptions.NotModified("Item", itemId)
	}
	m.items[itemId] = existing.Apply(input)
	if m.Vanish {
		delete(m.items, itemId)
	}
	m.mutex.Unlock()
	return m.Get(ctx, itemId)
}

func (m *MemoryItemRepository) Delete(ctx context.Context, itemId string) error {
	if _, err := uuid.Parse(itemId); err != nil {
		return exceptions.MalformedId("Item", itemId)
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.items[itemId]; !ok {
		return exceptions.NotFound("Item", itemId)
	}
	delete(m.items, itemId)
	return nil
}
