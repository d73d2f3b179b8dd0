package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/store"
)

// Carts implements store.CartStore over a table keyed (cust_id, cart_seq_no).
type Carts struct {
	client aws.DynamoDBAPI
	table  string
	// products resolves the joined display fields for ListActive.
	products store.ProductStore
}

func cartKey(custID, seqNo string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"cust_id":     &types.AttributeValueMemberS{Value: custID},
		"cart_seq_no": &types.AttributeValueMemberS{Value: seqNo},
	}
}

// ListActive queries the customer's partition and keeps unordered entries.
// Entries whose product vanished from the catalog are silently omitted.
func (s *Carts) ListActive(ctx context.Context, custID string) ([]store.CartLine, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.table,
		KeyConditionExpression: awsString("cust_id = :cid"),
		FilterExpression:       awsString("ord_yn = :ordered"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":     &types.AttributeValueMemberS{Value: custID},
			":ordered": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}

	lines := make([]store.CartLine, 0, len(out.Items))
	for _, item := range out.Items {
		var e store.CartEntry
		if err := attributevalue.UnmarshalMap(item, &e); err != nil {
			return nil, fmt.Errorf("unmarshal cart entry: %w", err)
		}
		p, err := s.products.Get(ctx, e.ProdCD)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, store.CartLine{
			CartEntry: e,
			ProdName:  p.ProdName,
			Price:     p.Price,
			ProdImg:   p.ProdImg,
		})
	}
	return lines, nil
}

func (s *Carts) Add(ctx context.Context, e store.CartEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal cart entry: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put cart entry: %w", err)
	}
	return nil
}

// Update patches size and/or quantity on an entry that is still unordered.
func (s *Carts) Update(ctx context.Context, custID, seqNo string, size *string, qty *int) error {
	expr := ""
	values := map[string]types.AttributeValue{
		":unordered": &types.AttributeValueMemberBOOL{Value: false},
	}
	if size != nil {
		expr = "SET prod_size = :s"
		values[":s"] = &types.AttributeValueMemberS{Value: *size}
	}
	if qty != nil {
		q := clampQty(*qty)
		if expr == "" {
			expr = "SET ord_qty = :q"
		} else {
			expr += ", ord_qty = :q"
		}
		values[":q"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", q)}
	}
	if expr == "" {
		return nil
	}

	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 &s.table,
		Key:                       cartKey(custID, seqNo),
		UpdateExpression:          &expr,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(cart_seq_no) AND ord_yn = :unordered"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("update cart entry: %w", err)
	}
	return nil
}

func (s *Carts) Remove(ctx context.Context, custID, seqNo string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:           &s.table,
		Key:                 cartKey(custID, seqNo),
		ConditionExpression: awsString("attribute_exists(cart_seq_no)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("delete cart entry: %w", err)
	}
	return nil
}

// MarkOrdered flips the entry to ordered and links the order number. The
// condition loses when a concurrent checkout already flagged the entry, or
// when the entry vanished; both report store.ErrAlreadyOrdered and the
// caller rolls the checkout back.
func (s *Carts) MarkOrdered(ctx context.Context, custID, seqNo string, ordNo int64) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:        &s.table,
		Key:              cartKey(custID, seqNo),
		UpdateExpression: awsString("SET ord_yn = :y, ord_no = :o"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":y":         &types.AttributeValueMemberBOOL{Value: true},
			":o":         &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ordNo)},
			":unordered": &types.AttributeValueMemberBOOL{Value: false},
		},
		ConditionExpression: awsString("attribute_exists(cart_seq_no) AND ord_yn = :unordered"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return store.ErrAlreadyOrdered
		}
		return fmt.Errorf("mark cart entry ordered: %w", err)
	}
	return nil
}

// Unmark reverts MarkOrdered during checkout rollback.
func (s *Carts) Unmark(ctx context.Context, custID, seqNo string) error {
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:        &s.table,
		Key:              cartKey(custID, seqNo),
		UpdateExpression: awsString("SET ord_yn = :n REMOVE ord_no"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		return fmt.Errorf("unmark cart entry: %w", err)
	}
	return nil
}

func clampQty(q int) int {
	if q < 1 {
		return 1
	}
	if q > 10 {
		return 10
	}
	return q
}
