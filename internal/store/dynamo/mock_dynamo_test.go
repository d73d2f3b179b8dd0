package dynamo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is an in-memory stand-in for the DynamoDB client. It evaluates
// only the expression shapes this package issues: attribute_exists /
// attribute_not_exists guards, AND-joined equality conditions, SET/REMOVE
// updates and single-attribute equality key conditions and filters.
// Intentionally minimal, not production-grade.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue
	// keyAttrs names the key attributes per table, in order.
	keyAttrs map[string][]string

	failNextUpdate error // injected into the next UpdateItem call
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string][]map[string]types.AttributeValue{},
		keyAttrs: map[string][]string{
			"Customers": {"cust_id"},
			"Products":  {"prod_cd"},
			"Carts":     {"cust_id", "cart_seq_no"},
			"Orders":    {"ord_no"},
			"Reviews":   {"ord_item_no"},
		},
	}
}

func testTables() Tables {
	return Tables{
		Customers: "Customers",
		Products:  "Products",
		Carts:     "Carts",
		Orders:    "Orders",
		Reviews:   "Reviews",
	}
}

func (m *mockDynamo) find(table string, key map[string]types.AttributeValue) int {
	for i, item := range m.tables[table] {
		match := true
		for _, attr := range m.keyAttrs[table] {
			if !attrEqual(item[attr], key[attr]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func attrEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	}
	return false
}

var existsRe = regexp.MustCompile(`attribute_(not_)?exists\((\w+)\)`)
var equalityRe = regexp.MustCompile(`([\w.\[\]]+) = (:\w+)`)

// checkCondition evaluates an AND-joined condition against the item at idx
// (idx < 0 means no such item).
func (m *mockDynamo) checkCondition(expr string, table string, idx int, values map[string]types.AttributeValue) bool {
	for _, clause := range strings.Split(expr, " AND ") {
		if match := existsRe.FindStringSubmatch(clause); match != nil {
			exists := idx >= 0
			if match[1] == "not_" && exists {
				return false
			}
			if match[1] == "" && !exists {
				return false
			}
			continue
		}
		if match := equalityRe.FindStringSubmatch(clause); match != nil {
			if idx < 0 {
				return false
			}
			item := m.tables[table][idx]
			if !attrEqual(item[match[1]], values[match[2]]) {
				return false
			}
			continue
		}
		panic(fmt.Sprintf("mock cannot evaluate condition clause %q", clause))
	}
	return true
}

// applyUpdate handles "SET a = :x, b = :y" plus an optional "REMOVE z" tail
// and the list form "SET items[i].review_written = :w".
func applyUpdate(item map[string]types.AttributeValue, expr string, values map[string]types.AttributeValue) error {
	removePart := ""
	if i := strings.Index(expr, " REMOVE "); i >= 0 {
		removePart = strings.TrimSpace(expr[i+len(" REMOVE "):])
		expr = expr[:i]
	}
	expr = strings.TrimPrefix(expr, "SET ")

	for _, assign := range strings.Split(expr, ", ") {
		match := equalityRe.FindStringSubmatch(assign)
		if match == nil {
			return fmt.Errorf("mock cannot parse assignment %q", assign)
		}
		target, value := match[1], values[match[2]]
		if strings.HasPrefix(target, "items[") {
			var idx int
			var field string
			if _, err := fmt.Sscanf(target, "items[%d].%s", &idx, &field); err != nil {
				return fmt.Errorf("mock cannot parse list target %q: %w", target, err)
			}
			list, ok := item["items"].(*types.AttributeValueMemberL)
			if !ok || idx >= len(list.Value) {
				return errors.New("items list index out of range")
			}
			entry, ok := list.Value[idx].(*types.AttributeValueMemberM)
			if !ok {
				return errors.New("items entry is not a map")
			}
			entry.Value[field] = value
			continue
		}
		item[target] = value
	}

	if removePart != "" {
		delete(item, removePart)
	}
	return nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	idx := m.find(table, params.Item)
	if params.ConditionExpression != nil &&
		!m.checkCondition(*params.ConditionExpression, table, idx, params.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if idx >= 0 {
		m.tables[table][idx] = params.Item
	} else {
		m.tables[table] = append(m.tables[table], params.Item)
	}
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.find(*params.TableName, params.Key)
	if idx < 0 {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: m.tables[*params.TableName][idx]}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNextUpdate != nil {
		err := m.failNextUpdate
		m.failNextUpdate = nil
		return nil, err
	}
	table := *params.TableName
	idx := m.find(table, params.Key)
	if params.ConditionExpression != nil &&
		!m.checkCondition(*params.ConditionExpression, table, idx, params.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if idx < 0 {
		// unconditional update on a missing item creates it from its key
		item := map[string]types.AttributeValue{}
		for k, v := range params.Key {
			item[k] = v
		}
		m.tables[table] = append(m.tables[table], item)
		idx = len(m.tables[table]) - 1
	}
	if err := applyUpdate(m.tables[table][idx], *params.UpdateExpression, params.ExpressionAttributeValues); err != nil {
		return nil, err
	}
	return &dyn.UpdateItemOutput{}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	idx := m.find(table, params.Key)
	if params.ConditionExpression != nil &&
		!m.checkCondition(*params.ConditionExpression, table, idx, params.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if idx >= 0 {
		m.tables[table] = append(m.tables[table][:idx], m.tables[table][idx+1:]...)
	}
	return &dyn.DeleteItemOutput{}, nil
}

// Query treats the key condition as a single equality; IndexName only
// changes which attribute that equality names, so both paths filter the
// whole table.
func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match := equalityRe.FindStringSubmatch(*params.KeyConditionExpression)
	if match == nil {
		return nil, fmt.Errorf("mock cannot parse key condition %q", *params.KeyConditionExpression)
	}
	var out []map[string]types.AttributeValue
	for _, item := range m.tables[*params.TableName] {
		if !attrEqual(item[match[1]], params.ExpressionAttributeValues[match[2]]) {
			continue
		}
		if params.FilterExpression != nil &&
			!filterMatch(item, *params.FilterExpression, params.ExpressionAttributeValues) {
			continue
		}
		out = append(out, item)
	}
	return &dyn.QueryOutput{Items: out}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []map[string]types.AttributeValue
	for _, item := range m.tables[*params.TableName] {
		if params.FilterExpression != nil &&
			!filterMatch(item, *params.FilterExpression, params.ExpressionAttributeValues) {
			continue
		}
		out = append(out, item)
	}
	return &dyn.ScanOutput{Items: out}, nil
}

func filterMatch(item map[string]types.AttributeValue, expr string, values map[string]types.AttributeValue) bool {
	for _, clause := range strings.Split(expr, " AND ") {
		match := equalityRe.FindStringSubmatch(clause)
		if match == nil {
			panic(fmt.Sprintf("mock cannot evaluate filter clause %q", clause))
		}
		if !attrEqual(item[match[1]], values[match[2]]) {
			return false
		}
	}
	return true
}

func (m *mockDynamo) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	for _, item := range params.TransactItems {
		if item.Put != nil {
			if _, err := m.PutItem(ctx, &dyn.PutItemInput{
				TableName:                 item.Put.TableName,
				Item:                      item.Put.Item,
				ConditionExpression:       item.Put.ConditionExpression,
				ExpressionAttributeValues: item.Put.ExpressionAttributeValues,
			}); err != nil {
				return nil, &types.TransactionCanceledException{}
			}
		}
	}
	return &dyn.TransactWriteItemsOutput{}, nil
}
