package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/maltedev/product-scraper/internal/models"
)

// EventType represents the type of event
type EventType string

const (
	// EventTypeProductScraped is published for every usable scrape result
	EventTypeProductScraped EventType = "PRODUCT_SCRAPED"

	DefaultStream = "stream:product_scraped"
)

// RedisClient is the subset of the Redis client the publisher needs.
type RedisClient interface {
	XAdd(ctx context.Context, args *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// ProductScrapedPayload is the event body written to the stream.
type ProductScrapedPayload struct {
	EventID    string            `json:"event_id"`
	EventType  string            `json:"event_type"`
	Timestamp  time.Time         `json:"timestamp"`
	URL        string            `json:"url"`
	Strategy   string            `json:"strategy"`
	Name       *string           `json:"name"`
	Price      *float64          `json:"price"`
	Image      *string           `json:"image"`
	Variants   []string          `json:"variants"`
	Provenance models.Provenance `json:"provenance"`
	Source     string            `json:"source"`
}

// Publisher writes scrape results to a Redis stream. Publishing happens
// after the response is decided; a failure never changes the result.
type Publisher struct {
	redis  RedisClient
	stream string
	source string
	logger *slog.Logger
}

func NewPublisher(client RedisClient, stream, source string, logger *slog.Logger) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{
		redis:  client,
		stream: stream,
		source: source,
		logger: logger.With("component", "event_publisher"),
	}
}

// PublishProductScraped appends a PRODUCT_SCRAPED event for result.
func (p *Publisher) PublishProductScraped(ctx context.Context, url string, result *models.ExtractionResult, prov models.Provenance) error {
	payload := &ProductScrapedPayload{
		EventID:    uuid.New().String(),
		EventType:  string(EventTypeProductScraped),
		Timestamp:  time.Now().UTC(),
		URL:        url,
		Strategy:   prov.Strategy,
		Name:       result.Name,
		Price:      result.Price,
		Image:      result.Image,
		Variants:   result.Variants,
		Provenance: prov,
		Source:     p.source,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data":       string(data),
			"event_id":   payload.EventID,
			"event_type": payload.EventType,
			"timestamp":  fmt.Sprintf("%d", payload.Timestamp.UnixNano()),
			"url":        url,
			"strategy":   payload.Strategy,
		},
	}

	id, err := p.redis.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}

	p.logger.Debug("event published",
		"type", payload.EventType,
		"event_id", payload.EventID,
		"stream", p.stream,
		"stream_id", id,
	)

	return nil
}

func (p *Publisher) Close() error {
	return p.redis.Close()
}
