package leads

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// dynamoLead is the item layout of the hosted leads table.
type dynamoLead struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email"`
	Interest  string `dynamodbav:"interest"`
	CreatedAt string `dynamodbav:"created_at"`
}

// DynamoRepository stores leads in a DynamoDB table keyed by id.
type DynamoRepository struct {
	client    dynamoAPI
	tableName string
	now       func() time.Time
}

// NewDynamoRepository builds a repository backed by the provided DynamoDB client.
func NewDynamoRepository(client dynamoAPI, tableName string) *DynamoRepository {
	if client == nil {
		panic("leads: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("leads: table name cannot be empty")
	}
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Insert writes a new item, refusing to overwrite an existing id.
func (r *DynamoRepository) Insert(ctx context.Context, rec Record) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      rec.Name,
		Email:     rec.Email,
		Interest:  rec.Interest,
		CreatedAt: r.now(),
	}
	item, err := attributevalue.MarshalMap(dynamoLead{
		ID:        lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Interest:  string(lead.Interest),
		CreatedAt: lead.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("leads: marshal item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}
	return lead, nil
}

// List scans the table and pages the result newest first. The leads table is
// small enough that a full scan per admin request is acceptable.
func (r *DynamoRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	filter = filter.normalized()
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if filter.Interest != "" {
		input.FilterExpression = aws.String("#interest = :interest")
		input.ExpressionAttributeNames = map[string]string{"#interest": "interest"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":interest": &types.AttributeValueMemberS{Value: string(filter.Interest)},
		}
	}

	var all []*Lead
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		var items []dynamoLead
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("leads: unmarshal items: %w", err)
		}
		for _, item := range items {
			createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
			all = append(all, &Lead{
				ID:        item.ID,
				Name:      item.Name,
				Email:     item.Email,
				Interest:  Interest(item.Interest),
				CreatedAt: createdAt,
			})
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, filter), nil
}
