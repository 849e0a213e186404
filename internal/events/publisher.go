// Package events publishes news lifecycle events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	NewsCreatedSubject = "news.created"
	NewsDeletedSubject = "news.deleted"
)

type NewsPublisher interface {
	PublishNewsCreated(ctx context.Context, news any) error
	PublishNewsDeleted(ctx context.Context, newsID int64) error
}

type DeletedEventPayload struct {
	ID int64 `json:"id"`
}

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
	IsClosed() bool
}

type Publisher struct {
	nc     conn
	logger *zap.SugaredLogger
}

func NewNATSPublisher(url string, connectTimeout time.Duration, logger *zap.SugaredLogger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("newsroom"),
		nats.Timeout(connectTimeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infow("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warnw("NATS disconnected", "error", err)
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Infow("connected to NATS", "url", nc.ConnectedUrl())

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) PublishNewsCreated(ctx context.Context, news any) error {
	return p.publish(NewsCreatedSubject, news)
}

func (p *Publisher) PublishNewsDeleted(ctx context.Context, newsID int64) error {
	return p.publish(NewsDeletedSubject, DeletedEventPayload{ID: newsID})
}

func (p *Publisher) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Debugw("published NATS message", "subject", subject)
	return nil
}

// Close flushes buffered messages before closing the connection.
func (p *Publisher) Close() {
	if p.nc == nil || p.nc.IsClosed() {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.logger.Errorw("error draining NATS connection", "error", err)
	}
}

// NoopPublisher drops every event. Used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishNewsCreated(context.Context, any) error { return nil }

func (NoopPublisher) PublishNewsDeleted(context.Context, int64) error { return nil }
