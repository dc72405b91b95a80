package item

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"Nutripedia-Backend/domain"
	"Nutripedia-Backend/entities"
)

type (
	// ItemRepository is the persistent key-value store for item records.
	// FindByName queries by the NameLowercase secondary index and returns
	// domain.ErrItemNotFound on a miss. Insert is a conditional
	// insert-if-absent by Id, returning domain.ErrItemAlreadyExists when that
	// exact id is already present. The store is append-only: records are never
	// updated or deleted. The conditional insert guards only re-insert of one
	// freshly generated id; two concurrent cold lookups for the same name can
	// still persist two records with distinct ids.
	ItemRepository interface {
		FindByName(ctx context.Context, nameLowercase string) (*entities.Item, error)
		Insert(ctx context.Context, item *entities.Item) error
	}

	dynamoItemRepository struct {
		client    *dynamodb.Client
		table     string
		nameIndex string
	}
)

func NewDynamoItemRepository(client *dynamodb.Client, table, nameIndex string) ItemRepository {
	return &dynamoItemRepository{
		client:    client,
		table:     table,
		nameIndex: nameIndex,
	}
}

func (r *dynamoItemRepository) FindByName(ctx context.Context, nameLowercase string) (*entities.Item, error) {
	keyCondition := expression.Key("NameLowercase").Equal(expression.Value(nameLowercase))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, err
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.nameIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, domain.ErrItemNotFound
	}

	return unmarshalRecord(out.Items[0])
}

func (r *dynamoItemRepository) Insert(ctx context.Context, item *entities.Item) error {
	record, err := marshalRecord(item)
	if err != nil {
		return err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                record,
		ConditionExpression: aws.String("attribute_not_exists(Id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return domain.ErrItemAlreadyExists
		}
		return err
	}
	return nil
}

// The persisted attribute map is exactly the flat post-storage JSON layout,
// round-tripped through the item's own JSON codec so the two can never drift.
func marshalRecord(item *entities.Item) (map[string]types.AttributeValue, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var flat map[string]interface{}
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return attributevalue.MarshalMap(flat)
}

func unmarshalRecord(record map[string]types.AttributeValue) (*entities.Item, error) {
	var flat map[string]interface{}
	if err := attributevalue.UnmarshalMap(record, &flat); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return nil, err
	}
	var it entities.Item
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, err
	}
	return &it, nil
}
