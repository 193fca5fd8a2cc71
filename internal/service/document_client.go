package service

import (
	"context"
	"fmt"
	"time"

	"ower-data/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DocRequest is the payload sent to the document-generation service: the
// debt record merged with the organizational requisite.
type DocRequest struct {
	Name           string            `json:"name"`
	Identification string            `json:"identification"`
	Date           string            `json:"date,omitempty"`
	DebtText       string            `json:"debt_text"`
	Requisite      *domain.Requisite `json:"requisite"`
}

// DocumentClient delegates .docx rendering to the external document service.
type DocumentClient interface {
	GenerateDebtNotice(ctx context.Context, req DocRequest) ([]byte, error)
}

type RestyDocumentClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewRestyDocumentClient(baseURL string, logger *zap.Logger) *RestyDocumentClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &RestyDocumentClient{httpClient: client, logger: logger}
}

var _ DocumentClient = (*RestyDocumentClient)(nil)

func (c *RestyDocumentClient) GenerateDebtNotice(ctx context.Context, req DocRequest) ([]byte, error) {
	c.logger.Info("requesting debt notice from document service",
		zap.String("name", req.Name))

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/v1/documents/debt-notice")
	if err != nil {
		return nil, fmt.Errorf("document service request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("document service returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}
