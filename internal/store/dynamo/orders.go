package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/store"
)

// custIDIndex is the GSI projecting orders by customer.
const custIDIndex = "cust_id-index"

// Orders implements store.OrderStore. One document per order, line items
// embedded, keyed by ord_no.
type Orders struct {
	client  aws.DynamoDBAPI
	table   string
	nowFunc func() time.Time
}

// Create persists the order document with its items. Guarded against order
// number reuse; the generator makes collisions unlikely, not impossible.
func (s *Orders) Create(ctx context.Context, o store.Order) error {
	if o.OrdDate.IsZero() {
		o.OrdDate = s.nowFunc()
	}
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.table,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(ord_no)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// Finalize promotes PENDING -> COMPLETED. The conditional write loses when
// the order is missing or not pending.
func (s *Orders) Finalize(ctx context.Context, ordNo int64) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:        &s.table,
		Key:              orderKey(ordNo),
		UpdateExpression: awsString("SET ord_status = :new"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new":      &types.AttributeValueMemberS{Value: store.OrderCompleted},
			":expected": &types.AttributeValueMemberS{Value: store.OrderPending},
		},
		ConditionExpression: awsString("ord_status = :expected"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("finalize order: %w", err)
	}
	return nil
}

// Delete removes the order document, items included. Compensating path only.
func (s *Orders) Delete(ctx context.Context, ordNo int64) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.table,
		Key:       orderKey(ordNo),
	})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (s *Orders) ListByCustomer(ctx context.Context, custID string) ([]store.Order, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.table,
		IndexName:              awsString(custIDIndex),
		KeyConditionExpression: awsString("cust_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: custID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	orders := make([]store.Order, 0, len(out.Items))
	for _, item := range out.Items {
		var o store.Order
		if err := attributevalue.UnmarshalMap(item, &o); err != nil {
			return nil, fmt.Errorf("unmarshal order: %w", err)
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrdNo > orders[j].OrdNo })
	return orders, nil
}

func (s *Orders) GetItem(ctx context.Context, ordItemNo string) (*store.OrderItem, error) {
	o, _, err := s.findItem(ctx, ordItemNo)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// SetReviewWritten updates the flag in place inside the order document.
func (s *Orders) SetReviewWritten(ctx context.Context, ordItemNo string, written bool) error {
	_, idx, err := s.findItem(ctx, ordItemNo)
	if err != nil {
		return err
	}
	expr := fmt.Sprintf("SET items[%d].review_written = :w", idx)
	ordNo, _ := store.ParseItemNo(ordItemNo)
	_, err = s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:        &s.table,
		Key:              orderKey(ordNo),
		UpdateExpression: &expr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":w": &types.AttributeValueMemberBOOL{Value: written},
		},
	})
	if err != nil {
		return fmt.Errorf("set review written: %w", err)
	}
	return nil
}

// findItem loads the owning order and locates the line item by id.
func (s *Orders) findItem(ctx context.Context, ordItemNo string) (*store.OrderItem, int, error) {
	ordNo, err := store.ParseItemNo(ordItemNo)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.table,
		Key:       orderKey(ordNo),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("get order: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, 0, store.ErrNotFound
	}
	var o store.Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, 0, fmt.Errorf("unmarshal order: %w", err)
	}
	for i := range o.Items {
		if o.Items[i].OrdItemNo == ordItemNo {
			return &o.Items[i], i, nil
		}
	}
	return nil, 0, store.ErrNotFound
}

func orderKey(ordNo int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"ord_no": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ordNo)},
	}
}
