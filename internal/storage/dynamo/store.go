// Package dynamo persists registrations in a DynamoDB table keyed by email.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/metrics"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/registration"
)

const scanPageSize = 100

// API is the subset of the DynamoDB client used by Store.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// item is the table layout. The partition key is email, which makes a second
// registration for the same address fail at write time.
type item struct {
	Email        string                     `dynamodbav:"email"`
	SubmissionID string                     `dynamodbav:"submission_id"`
	SubmittedAt  time.Time                  `dynamodbav:"submitted_at"`
	Collection   string                     `dynamodbav:"collection"`
	BirdCategory string                     `dynamodbav:"bird_category,omitempty"`
	CheckedIn    bool                       `dynamodbav:"checked_in"`
	Paid         bool                       `dynamodbav:"paid"`
	Registration models.RegistrationPayload `dynamodbav:"registration"`
}

type Store struct {
	api      API
	table    string
	maxPages int
	logger   *logrus.Logger
}

func NewStore(api API, cfg config.DynamoDBConfig, logger *logrus.Logger) *Store {
	maxPages := cfg.MaxScanPages
	if maxPages <= 0 {
		maxPages = 50
	}
	return &Store{
		api:      api,
		table:    cfg.TableName,
		maxPages: maxPages,
		logger:   logger,
	}
}

// CollectionID is the table name; every item carries it so records copied
// between tables are not mistaken for local ones.
func (s *Store) CollectionID() string {
	return s.table
}

func (s *Store) CreateRegistration(ctx context.Context, rec models.RegistrationRecord) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "dynamodb.put_item")
	defer span.End()

	av, err := attributevalue.MarshalMap(item{
		Email:        rec.Identity.Email,
		SubmissionID: rec.SubmissionID,
		SubmittedAt:  rec.SubmittedAt,
		Collection:   s.table,
		BirdCategory: rec.BirdCategory,
		Registration: rec.RegistrationPayload,
	})
	if err != nil {
		return "", fmt.Errorf("marshal failed: %w", err)
	}

	start := time.Now()
	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	metrics.RecordUpstreamCall("dynamodb", "put_item", err, time.Since(start))

	var conflict *types.ConditionalCheckFailedException
	if errors.As(err, &conflict) {
		return "", registration.ErrContactExists
	}
	if err != nil {
		middleware.RecordError(span, err)
		return "", fmt.Errorf("put item failed: %w", err)
	}

	return rec.SubmissionID, nil
}

func (s *Store) ListRegistrations(ctx context.Context) ([]registration.StoredRegistration, error) {
	ctx, span := middleware.StartSpan(ctx, "dynamodb.scan")
	defer span.End()

	start := time.Now()
	var (
		out       []registration.StoredRegistration
		startKey  map[string]types.AttributeValue
		pages     int
		truncated bool
	)

	for pages < s.maxPages {
		resp, err := s.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			Limit:             aws.Int32(scanPageSize),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			metrics.RecordUpstreamCall("dynamodb", "scan", err, time.Since(start))
			middleware.RecordError(span, err)
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		pages++

		var items []item
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal failed: %w", err)
		}
		for _, it := range items {
			out = append(out, registration.StoredRegistration{
				ID:           it.SubmissionID,
				CollectionID: it.Collection,
				Title:        it.SubmissionID,
				Email:        it.Email,
				Category:     it.BirdCategory,
			})
		}

		if len(resp.LastEvaluatedKey) == 0 {
			truncated = false
			break
		}
		startKey = resp.LastEvaluatedKey
		truncated = true
	}

	metrics.RecordUpstreamCall("dynamodb", "scan", nil, time.Since(start))
	if truncated {
		s.logger.WithField("pages", pages).Warn("DynamoDB scan stopped at page limit")
	}
	return out, nil
}
