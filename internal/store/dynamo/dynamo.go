// Package dynamo implements the repository interfaces over DynamoDB.
//
// Orders embed their line items in one document; the cart is a separate
// table keyed (cust_id, cart_seq_no) so entries stay independently
// addressable. Multi-item writes that must land together go through
// TransactWriteItems; single-row state flips use conditional expressions.
package dynamo

import (
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/seoulstyle/storefront/internal/aws"
	"github.com/seoulstyle/storefront/internal/store"
)

// Tables names the DynamoDB tables one deployment uses.
type Tables struct {
	Customers string
	Products  string
	Carts     string
	Orders    string
	Reviews   string
}

// New wires every repository against the same client.
func New(client aws.DynamoDBAPI, t Tables) store.Stores {
	products := &Products{client: client, table: t.Products}
	return store.Stores{
		Customers: &Customers{client: client, table: t.Customers},
		Products:  products,
		Carts:     &Carts{client: client, table: t.Carts, products: products},
		Orders:    &Orders{client: client, table: t.Orders, nowFunc: time.Now},
		Reviews:   &Reviews{client: client, table: t.Reviews, nowFunc: time.Now},
	}
}

// isConditionalFailure detects a failed ConditionExpression on a single-item write.
func isConditionalFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }
