package data

import "context"

type Repository[T interface{}, I interface{}] interface {
	Create(ctx context.Context, input I) (T, error)
	Get(ctx context.Context, itemId string) (T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, itemId string, input I) (T, error)
	Delete(ctx context.Context, itemId string) error
}
