package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/store"
)

// Products implements store.ProductStore. The catalog is small and static,
// so List is a full table scan.
type Products struct {
	client aws.DynamoDBAPI
	table  string
}

func (s *Products) List(ctx context.Context) ([]store.Product, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.table})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	products := make([]store.Product, 0, len(out.Items))
	for _, item := range out.Items {
		var p store.Product
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, fmt.Errorf("unmarshal product: %w", err)
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProdCD < products[j].ProdCD })
	return products, nil
}

func (s *Products) Get(ctx context.Context, prodCD string) (*store.Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.table,
		Key: map[string]types.AttributeValue{
			"prod_cd": &types.AttributeValueMemberS{Value: prodCD},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, store.ErrNotFound
	}
	var p store.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// Put overwrites unconditionally; seeding is the only writer.
func (s *Products) Put(ctx context.Context, p store.Product) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put product: %w", err)
	}
	return nil
}
