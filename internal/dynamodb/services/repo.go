package services

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"philcali.me/inventory/internal/exceptions"
)

// DynamoDBAPI is the subset of *dynamodb.Client the repository calls.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// RepositoryDynamoDBService stores every document of one collection under a
// single partition key (Name) with the document id as the sort key.
type RepositoryDynamoDBService[T interface{}, I interface{}] struct {
	DynamoDB  DynamoDBAPI
	TableName string
	Name      string
	Resource  string
	Shim      func(pk string, sk string) T
	OnCreate  func(input I, pk string, sk string) T
	OnUpdate  func(input I) map[string]interface{}
	ParseId   func(id string) error
}

func _getKey(pks string, sks string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(pks)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(sks)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func _isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (rs *RepositoryDynamoDBService[T, I]) _checkId(itemId string) error {
	if rs.ParseId == nil {
		return nil
	}
	if err := rs.ParseId(itemId); err != nil {
		return exceptions.MalformedId(rs.Resource, itemId)
	}
	return nil
}

// List reads the whole collection, following LastEvaluatedKey to the end.
func (rs *RepositoryDynamoDBService[T, I]) List(ctx context.Context) ([]T, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(rs.Name))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, err
	}
	paginator := dynamodb.NewQueryPaginator(rs.DynamoDB, &dynamodb.QueryInput{
		TableName:                 aws.String(rs.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	items := make([]T, 0)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
	}
	return items, nil
}

// Create writes a new document under a fresh id and reads it back.
func (rs *RepositoryDynamoDBService[T, I]) Create(ctx context.Context, input I) (T, error) {
	gid, err := uuid.NewUUID()
	if err != nil {
		return rs.Shim(rs.Name, ""), err
	}
	shim := rs.OnCreate(input, rs.Name, gid.String())
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if _isConditionFailure(err) {
			return shim, exceptions.Conflict(rs.Resource, gid.String())
		}
		return shim, err
	}
	return rs.Get(ctx, gid.String())
}

// Update sets every non-null attribute of the input. The write is conditioned
// on the document existing and at least one attribute differing, so either
// failure reads as "not modified". The document is read back afterwards.
func (rs *RepositoryDynamoDBService[T, I]) Update(ctx context.Context, itemId string, input I) (T, error) {
	shim := rs.Shim(rs.Name, itemId)
	if err := rs._checkId(itemId); err != nil {
		return shim, err
	}
	attributes := rs.OnUpdate(input)
	if len(attributes) == 0 {
		return shim, exceptions.NotModified(rs.Resource, itemId)
	}
	key, err := _getKey(rs.Name, itemId)
	if err != nil {
		return shim, err
	}
	names := maps.Keys(attributes)
	slices.Sort(names)
	var update expression.UpdateBuilder
	changes := make([]expression.ConditionBuilder, 0, len(names))
	for _, name := range names {
		value := expression.Value(attributes[name])
		update = update.Set(expression.Name(name), value)
		changes = append(changes, expression.Name(name).AttributeNotExists().Or(expression.Name(name).NotEqual(value)))
	}
	changed := changes[0]
	if len(changes) > 1 {
		changed = expression.Or(changes[0], changes[1], changes[2:]...)
	}
	condition := expression.Name("PK").AttributeExists().And(changed)
	expr, err := expression.NewBuilder().WithCondition(condition).WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})
	if err != nil {
		if _isConditionFailure(err) {
			return shim, exceptions.NotModified(rs.Resource, itemId)
		}
		return shim, err
	}
	return rs.Get(ctx, itemId)
}

func (rs *RepositoryDynamoDBService[T, I]) Get(ctx context.Context, itemId string) (T, error) {
	shim := rs.Shim(rs.Name, itemId)
	if err := rs._checkId(itemId); err != nil {
		return shim, err
	}
	key, err := _getKey(rs.Name, itemId)
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(rs.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound(rs.Resource, itemId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

// Delete removes at most one document; a missing one is a NotFoundError.
func (rs *RepositoryDynamoDBService[T, I]) Delete(ctx context.Context, itemId string) error {
	if err := rs._checkId(itemId); err != nil {
		return err
	}
	key, err := _getKey(rs.Name, itemId)
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeExists()).Build()
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:                      key,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil && _isConditionFailure(err) {
		return exceptions.NotFound(rs.Resource, itemId)
	}
	return err
}
