// Package dynamo implements the remote store over a DynamoDB single-table
// layout: PK "USER#{userID}", SK "{collection}#{documentID}". One item per
// synchronized document, payload carried as raw JSON text.
package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/creatorsync/creatorsync/internal/remote"
	"github.com/creatorsync/creatorsync/internal/session"
)

// loadDefaultAWSConfig is a test seam for AWS config loading.
var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// item is the DynamoDB representation of a remote.Document.
type item struct {
	PK           string `dynamodbav:"pk"`
	SK           string `dynamodbav:"sk"`
	ID           string `dynamodbav:"id"`
	Payload      string `dynamodbav:"payload"`
	CreatedAt    int64  `dynamodbav:"created_at"`
	LastModified int64  `dynamodbav:"last_modified"`
}

// Store implements remote.Store over a DynamoDB table.
type Store struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

// New returns a Store bound to the given DynamoDB client and table.
func New(client *dynamodb.Client, table string) *Store {
	return &Store{client: client, table: table, now: time.Now}
}

// NewFromRegion constructs the DynamoDB client from the default AWS
// credential chain for region and returns a Store over table.
func NewFromRegion(ctx context.Context, region, table string) (*Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}
	return New(dynamodb.NewFromConfig(cfg), table), nil
}

func userKey(userID string) string {
	return "USER#" + userID
}

func docKey(collection, id string) string {
	return collection + "#" + id
}

// FetchAll queries every document of one collection belonging to the session
// user, ordered by creation time.
func (s *Store) FetchAll(ctx context.Context, sess *session.Session, collection string) ([]remote.Document, error) {
	if sess == nil {
		return nil, common.ErrRemoteUnavailable
	}

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: userKey(sess.UserID)},
			":prefix": &types.AttributeValueMemberS{Value: collection + "#"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query failed: %w", common.ErrRemoteUnavailable, err)
	}

	var items []item
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documents: %w", err)
	}

	docs := make([]remote.Document, 0, len(items))
	for _, it := range items {
		docs = append(docs, remote.Document{
			ID:           it.ID,
			Payload:      []byte(it.Payload),
			CreatedAt:    time.Unix(0, it.CreatedAt),
			LastModified: time.Unix(0, it.LastModified),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.Before(docs[j].CreatedAt) })
	return docs, nil
}

// Upsert overwrites the document with the same id, stamping last_modified
// with the store's clock.
func (s *Store) Upsert(ctx context.Context, sess *session.Session, collection string, doc remote.Document) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}

	it := item{
		PK:           userKey(sess.UserID),
		SK:           docKey(collection, doc.ID),
		ID:           doc.ID,
		Payload:      string(doc.Payload),
		CreatedAt:    doc.CreatedAt.UnixNano(),
		LastModified: s.now().UnixNano(),
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("%w: put failed: %w", common.ErrRemoteUnavailable, err)
	}
	return nil
}

// Delete removes the document if present. Missing documents are not an error.
func (s *Store) Delete(ctx context.Context, sess *session.Session, collection string, id string) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: userKey(sess.UserID)},
			"sk": &types.AttributeValueMemberS{Value: docKey(collection, id)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: delete failed: %w", common.ErrRemoteUnavailable, err)
	}
	return nil
}
