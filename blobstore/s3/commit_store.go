package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CommitStore publishes chunk-manifest versions through DynamoDB conditional
// writes, giving the compare-and-swap semantics that S3 lacks. It implements
// chunkstore.CommitStore.
//
// Each publication writes one item; the current version is the item with the
// highest sort key. Concurrent publishers racing for the same version lose
// the conditional write and get ErrConcurrentModification.
//
// Table schema:
//   - Partition key: name (string) - the array/dataset name
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name ndgo-commits \
//	  --attribute-definitions AttributeName=name,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=name,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	client    DDBClient
	tableName string
}

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentModification is returned when a concurrent publish is detected.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// NewCommitStore creates a DynamoDB commit store using the given table.
func NewCommitStore(client DDBClient, tableName string) *CommitStore {
	return &CommitStore{
		client:    client,
		tableName: tableName,
	}
}

// Publish records manifestKey as the given version of name.
// version must be exactly one past the current version; otherwise the
// conditional write fails with ErrConcurrentModification.
func (s *CommitStore) Publish(ctx context.Context, name, manifestKey string, version uint64) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"name":         &types.AttributeValueMemberS{Value: name},
			"version":      &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"manifest_key": &types.AttributeValueMemberS{Value: manifestKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return nil
}

// Current returns the latest published manifest key and version for name.
// When nothing has been published yet it returns version 0 and no error.
func (s *CommitStore) Current(ctx context.Context, name string) (string, uint64, error) {
	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("#n = :name"),
		ExpressionAttributeNames: map[string]string{
			"#n": "name", // "name" is a DynamoDB reserved word
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", 0, nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return "", 0, errors.New("invalid version attribute in DynamoDB")
	}
	keyAttr, ok := item["manifest_key"].(*types.AttributeValueMemberS)
	if !ok {
		return "", 0, errors.New("invalid manifest_key attribute in DynamoDB")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse version: %w", err)
	}
	return keyAttr.Value, version, nil
}
