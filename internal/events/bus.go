// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/resilience"
)

// ErrBusClosed is returned by Publish after Close.
var ErrBusClosed = errors.New("event bus is closed")

// Handler processes one IngestCompleted event. A returned error is logged;
// the message is acknowledged either way.
type Handler func(ctx context.Context, e *IngestCompleted) error

// Bus publishes ingestion events in-process and, optionally, to NATS.
// In-process subscribers are always served from the local channel; NATS is
// a fan-out for other processes.
type Bus struct {
	topic   string
	local   *gochannel.GoChannel
	remote  message.Publisher
	breaker *resilience.Breaker
	logger  watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewBus creates the bus. With cfg.NATSURL empty only the in-process channel
// is used.
func NewBus(cfg config.EventsConfig) (*Bus, error) {
	logger := logging.NewWatermillAdapter()
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	b := &Bus{
		topic: topic,
		local: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 16,
		}, logger),
		logger: logger,
	}

	if cfg.NATSURL != "" {
		pub, err := newNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			_ = b.local.Close()
			return nil, err
		}
		b.remote = pub
		b.breaker = resilience.NewBreaker("nats-publisher")
		logging.Info().Str("url", cfg.NATSURL).Str("topic", topic).Msg("NATS event publishing enabled")
	}

	return b, nil
}

// newNATSPublisher connects a core NATS publisher. JetStream is not used;
// ingestion events are notifications, not a durable log.
func newNATSPublisher(url string, logger watermill.LoggerAdapter) (message.Publisher, error) {
	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return pub, nil
}

// Topic returns the topic events are published on.
func (b *Bus) Topic() string {
	return b.topic
}

// PublishIngestCompleted publishes e locally and, when configured, to NATS.
// A NATS failure is logged and returned but never prevents local delivery.
func (b *Bus) PublishIngestCompleted(ctx context.Context, e *IngestCompleted) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	data, err := e.Marshal()
	if err != nil {
		return err
	}

	id := e.RunID
	if id == "" {
		id = watermill.NewUUID()
	}

	msg := message.NewMessage(id, data)
	msg.SetContext(ctx)
	err = b.local.Publish(b.topic, msg)
	metrics.RecordEventPublished(b.topic, "gochannel", err)
	if err != nil {
		return fmt.Errorf("publish locally: %w", err)
	}

	if b.remote == nil {
		return nil
	}

	remoteMsg := message.NewMessage(id, data)
	remoteMsg.Metadata.Set(natsgo.MsgIdHdr, id)
	_, err = b.breaker.Execute(func() (interface{}, error) {
		return nil, b.remote.Publish(b.topic, remoteMsg)
	})
	metrics.RecordEventPublished(b.topic, "nats", err)
	if err != nil {
		b.logger.Error("Failed to publish ingest event to NATS", err, watermill.LogFields{"run_id": id})
		return fmt.Errorf("publish to nats: %w", err)
	}
	return nil
}

// Listen delivers every event on the topic to h until ctx is cancelled.
// It blocks, so it can back a supervised service.
func (b *Bus) Listen(ctx context.Context, h Handler) error {
	messages, err := b.Subscribe(ctx)
	if err != nil {
		return err
	}
	return b.Consume(ctx, messages, h)
}

// Subscribe registers an in-process subscriber. Events published before the
// call are not delivered to it.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	messages, err := b.local.Subscribe(ctx, b.topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", b.topic, err)
	}
	return messages, nil
}

// Consume runs h for each message until ctx is cancelled or messages closes.
func (b *Bus) Consume(ctx context.Context, messages <-chan *message.Message, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.handle(ctx, msg, h)
		}
	}
}

// handle acks unconditionally: the local channel redelivers nacked messages
// immediately, and a failing handler would spin.
func (b *Bus) handle(ctx context.Context, msg *message.Message, h Handler) {
	defer msg.Ack()

	e, err := UnmarshalIngestCompleted(msg.Payload)
	if err != nil {
		b.logger.Error("Dropping malformed ingest event", err, watermill.LogFields{"uuid": msg.UUID})
		return
	}
	if err := h(ctx, e); err != nil {
		b.logger.Error("Ingest event handler failed", err, watermill.LogFields{"run_id": e.RunID})
	}
}

// Close shuts down the local channel and the NATS publisher.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if b.remote != nil {
		if err := b.remote.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close nats publisher: %w", err))
		}
	}
	if err := b.local.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close local channel: %w", err))
	}
	return errors.Join(errs...)
}
