package ceeb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/simulate"
)

// DefaultSubmitDelay simulated CEEB round trip.
const DefaultSubmitDelay = 2 * time.Second

// Submitter delivers a CEEB document and returns the registry's reference.
type Submitter interface {
	Submit(ctx context.Context, document []byte) (string, error)
}

// SimulatedSubmitter waits Delay and then accepts every document.
type SimulatedSubmitter struct {
	Delay time.Duration
}

func NewSimulatedSubmitter(delay time.Duration) *SimulatedSubmitter {
	return &SimulatedSubmitter{Delay: delay}
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, _ []byte) (string, error) {
	if err := simulate.Wait(ctx, s.Delay); err != nil {
		return "", err
	}
	return "SIM-" + strings.ToUpper(uuid.NewString()[:8]), nil
}

// submitResponse body returned by the CEEB gateway.
type submitResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// HTTPSubmitter posts documents to a CEEB gateway.
type HTTPSubmitter struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewHTTPSubmitter creates a submitter for the gateway at baseURL.
func NewHTTPSubmitter(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPSubmitter {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/xml").
		SetHeader("Accept", "application/json")

	return &HTTPSubmitter{
		httpClient: client,
		logger:     logger,
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, document []byte) (string, error) {
	var response submitResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(document).
		SetResult(&response).
		Post("/submissions")
	if err != nil {
		s.logger.Error("CEEB gateway call failed", zap.Error(err))
		return "", fmt.Errorf("failed to call CEEB gateway: %w", err)
	}
	if resp.IsError() {
		s.logger.Error("CEEB gateway rejected submission",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", fmt.Errorf("CEEB gateway error: status %d", resp.StatusCode())
	}
	if response.Reference == "" {
		return "", fmt.Errorf("CEEB gateway returned no reference (status: %s)", response.Status)
	}

	s.logger.Info("CEEB submission accepted",
		zap.String("reference", response.Reference),
		zap.String("status", response.Status),
	)
	return response.Reference, nil
}
