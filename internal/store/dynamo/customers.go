package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/store"
)

// Customers implements store.CustomerStore.
type Customers struct {
	client aws.DynamoDBAPI
	table  string
}

// Create inserts the customer, guarded so a concurrent registration with the
// same id loses with store.ErrDuplicate.
func (s *Customers) Create(ctx context.Context, c store.Customer) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.table,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(cust_id)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("put customer: %w", err)
	}
	return nil
}

func (s *Customers) Get(ctx context.Context, custID string) (*store.Customer, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			"cust_id": &types.AttributeValueMemberS{Value: custID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, store.ErrNotFound
	}
	var c store.Customer
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	return &c, nil
}
