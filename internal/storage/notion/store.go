// Package notion persists registrations as pages of a Notion database.
package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/metrics"
	"github.com/mettaway/ventara/internal/middleware"
	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/registration"
)

const pageSize = 100

// Store reads and writes registration pages in one Notion database.
type Store struct {
	client     *notionapi.Client
	databaseID string
	maxPages   int
	logger     *logrus.Logger
}

// NewStore creates a Store. Options are passed through to the Notion client.
func NewStore(cfg config.NotionConfig, logger *logrus.Logger, opts ...notionapi.ClientOption) *Store {
	maxPages := cfg.MaxScanPages
	if maxPages <= 0 {
		maxPages = 50
	}
	return &Store{
		client:     notionapi.NewClient(notionapi.Token(cfg.IntegrationSecret), opts...),
		databaseID: cfg.DatabaseID,
		maxPages:   maxPages,
		logger:     logger,
	}
}

func (s *Store) CollectionID() string {
	return s.databaseID
}

// ListRegistrations pages through the database with start_cursor until
// Notion reports no more results or maxPages is reached.
func (s *Store) ListRegistrations(ctx context.Context) ([]registration.StoredRegistration, error) {
	ctx, span := middleware.StartSpan(ctx, "notion.query_database")
	defer span.End()

	start := time.Now()
	var (
		out       []registration.StoredRegistration
		cursor    notionapi.Cursor
		pages     int
		truncated bool
		err       error
	)
	defer func() {
		metrics.RecordUpstreamCall("notion", "query_database", err, time.Since(start))
		middleware.RecordError(span, err)
	}()

	for pages < s.maxPages {
		var resp *notionapi.DatabaseQueryResponse
		resp, err = s.client.Database.Query(ctx, notionapi.DatabaseID(s.databaseID), &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			err = fmt.Errorf("failed to query notion database: %w", err)
			return nil, err
		}
		pages++

		for _, page := range resp.Results {
			out = append(out, storedFromPage(page))
		}

		if !resp.HasMore || resp.NextCursor == "" {
			truncated = false
			break
		}
		cursor = resp.NextCursor
		truncated = true
	}

	if truncated {
		s.logger.WithFields(logrus.Fields{
			"pages":   pages,
			"records": len(out),
		}).Warn("Notion scan stopped at page limit")
	}

	middleware.AddSpanAttributes(span, map[string]interface{}{
		"notion.pages":   pages,
		"notion.records": len(out),
	})
	return out, nil
}

// CreateRegistration creates one page holding rec. It is not retried.
func (s *Store) CreateRegistration(ctx context.Context, rec models.RegistrationRecord) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "notion.create_page")
	defer span.End()

	start := time.Now()
	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.databaseID),
		},
		Properties: pageProperties(rec),
	})
	metrics.RecordUpstreamCall("notion", "create_page", err, time.Since(start))
	if err != nil {
		middleware.RecordError(span, err)
		return "", fmt.Errorf("failed to create notion page: %w", err)
	}

	return page.ID.String(), nil
}
