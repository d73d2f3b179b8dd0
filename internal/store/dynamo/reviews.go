package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/store"
)

// prodCDIndex is the GSI projecting reviews by product.
const prodCDIndex = "prod_cd-index"

// Reviews implements store.ReviewStore. The table is keyed by ord_item_no,
// which is exactly the one-review-per-line-item uniqueness constraint.
type Reviews struct {
	client  aws.DynamoDBAPI
	table   string
	nowFunc func() time.Time
}

// Upsert writes the review for its line item. A second call for the same
// item overwrites score and comment but keeps the original sequence number.
func (s *Reviews) Upsert(ctx context.Context, r store.Review) (string, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.table,
		Key:       reviewKey(r.OrdItemNo),
	})
	if err != nil {
		return "", fmt.Errorf("get review: %w", err)
	}
	if len(out.Item) > 0 {
		var prev store.Review
		if err := attributevalue.UnmarshalMap(out.Item, &prev); err != nil {
			return "", fmt.Errorf("unmarshal review: %w", err)
		}
		r.EvalSeqNo = prev.EvalSeqNo
	} else {
		r.EvalSeqNo = uuid.NewString()
	}
	r.EvalDate = s.nowFunc()

	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return "", fmt.Errorf("marshal review: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return "", fmt.Errorf("put review: %w", err)
	}
	return r.EvalSeqNo, nil
}

// Delete removes the review only when custID owns it. Scanning by sequence
// number is acceptable at this scale; reviews are few per customer.
func (s *Reviews) Delete(ctx context.Context, evalSeqNo, custID string) (*store.Review, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName:        &s.table,
		FilterExpression: awsString("eval_seq_no = :e AND cust_id = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: evalSeqNo},
			":c": &types.AttributeValueMemberS{Value: custID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan reviews: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, store.ErrNotFound
	}
	var r store.Review
	if err := attributevalue.UnmarshalMap(out.Items[0], &r); err != nil {
		return nil, fmt.Errorf("unmarshal review: %w", err)
	}

	_, err = s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:           &s.table,
		Key:                 reviewKey(r.OrdItemNo),
		ConditionExpression: awsString("attribute_exists(ord_item_no)"),
	})
	if err != nil {
		if isConditionalFailure(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("delete review: %w", err)
	}
	return &r, nil
}

func (s *Reviews) ListByProduct(ctx context.Context, prodCD string) ([]store.Review, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.table,
		IndexName:              awsString(prodCDIndex),
		KeyConditionExpression: awsString("prod_cd = :p"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: prodCD},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	reviews := make([]store.Review, 0, len(out.Items))
	for _, item := range out.Items {
		var r store.Review
		if err := attributevalue.UnmarshalMap(item, &r); err != nil {
			return nil, fmt.Errorf("unmarshal review: %w", err)
		}
		reviews = append(reviews, r)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].EvalDate.After(reviews[j].EvalDate) })
	return reviews, nil
}

func reviewKey(ordItemNo string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"ord_item_no": &types.AttributeValueMemberS{Value: ordItemNo},
	}
}
