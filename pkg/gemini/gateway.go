package gemini

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// maxRetries is the number of additional attempts after the first
	// rate-limited call, giving four attempts in total.
	maxRetries = 3
	baseDelay  = 2 * time.Second
)

var ErrEmptyResponse = errors.New("model returned an empty response")

type (
	// Generator is the outbound inference boundary. Services depend on
	// this rather than on the concrete client.
	Generator interface {
		Generate(ctx context.Context, parts ...genai.Part) (string, error)
	}

	Gateway struct {
		client *genai.Client
		model  *genai.GenerativeModel

		// seams for tests
		generate func(ctx context.Context, parts ...genai.Part) (string, error)
		sleep    func(ctx context.Context, d time.Duration) error
		jitter   func() float64
	}
)

func NewGateway(ctx context.Context, apiKey, modelName string) (*Gateway, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	g := &Gateway{
		client: client,
		model:  client.GenerativeModel(modelName),
		sleep:  sleepContext,
		jitter: rand.Float64,
	}
	g.generate = g.callModel
	return g, nil
}

func (g *Gateway) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Generate invokes the model once, masking rate-limit failures with a
// bounded exponential backoff: 2s, 4s, 8s before the 2nd, 3rd and 4th
// attempts, each plus up to a second of jitter. Any other failure class
// propagates immediately, and exhausting the retries propagates the last
// rate-limit error without a further sleep. Each call is independent;
// there is no shared budget across invocations.
func (g *Gateway) Generate(ctx context.Context, parts ...genai.Part) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay*time.Duration(1<<(attempt-1)) +
				time.Duration(g.jitter()*float64(time.Second))
			if err := g.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		text, err := g.generate(ctx, parts...)
		if err == nil {
			return text, nil
		}
		if !isRateLimited(err) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

func (g *Gateway) callModel(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", ErrEmptyResponse
	}
	return string(text), nil
}

// isRateLimited reports whether err is a quota-exhaustion failure. The
// client surfaces these as gRPC ResourceExhausted or HTTP 429 depending
// on the transport.
func isRateLimited(err error) bool {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if s := apiErr.GRPCStatus(); s != nil && s.Code() == codes.ResourceExhausted {
			return true
		}
		if apiErr.HTTPCode() == http.StatusTooManyRequests {
			return true
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return true
	}

	return status.Code(err) == codes.ResourceExhausted
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
