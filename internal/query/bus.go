package query

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// InvalidateTopic carries one cache tag per message.
const InvalidateTopic = "query.invalidate"

// Bus broadcasts cache invalidations from mutations to every listening cache.
// Publish returns once every listener has dropped the tagged entries, so a
// read issued after Publish never sees stale pages.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates an in-process bus.
func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			BlockPublishUntilSubscriberAck: true,
		}, zapAdapter{log: log.Named("bus")}),
	}
}

// Publish announces that entries tagged with tags are stale.
func (b *Bus) Publish(tags ...string) error {
	for _, tag := range tags {
		msg := message.NewMessage(watermill.NewUUID(), []byte(tag))
		if err := b.pubsub.Publish(InvalidateTopic, msg); err != nil {
			return fmt.Errorf("publishing invalidation of %q: %w", tag, err)
		}
	}
	return nil
}

// Close stops the bus and ends every subscription.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Listen invalidates c whenever a tag is published on bus, until ctx ends.
// onInvalidate, when non-nil, runs after each invalidation.
func (c *Cache) Listen(ctx context.Context, bus *Bus, onInvalidate func(tag string, removed int)) error {
	messages, err := bus.pubsub.Subscribe(ctx, InvalidateTopic)
	if err != nil {
		return fmt.Errorf("subscribing to invalidations: %w", err)
	}
	go func() {
		for msg := range messages {
			tag := string(msg.Payload)
			removed := c.InvalidateTag(tag)
			msg.Ack()
			if onInvalidate != nil {
				onInvalidate(tag, removed)
			}
		}
	}()
	return nil
}

// zapAdapter lets watermill log through zap.
type zapAdapter struct {
	log *zap.Logger
}

func (a zapAdapter) fields(f watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (a zapAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(a.fields(fields), zap.Error(err))...)
}

func (a zapAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, a.fields(fields)...)
}

func (a zapAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, a.fields(fields)...)
}

func (a zapAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, a.fields(fields)...)
}

func (a zapAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return zapAdapter{log: a.log.With(a.fields(fields)...)}
}
