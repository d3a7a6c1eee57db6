package audit

import (
	"context"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic carries audit entries.
const Topic = "audit.entries"

// DefaultMaxPending bounds entries published but not yet delivered.
const DefaultMaxPending = 256

// Bus is a Notifier backed by a watermill Go channel.
type Bus struct {
	pubsub     *gochannel.GoChannel
	logger     watermill.LoggerAdapter
	slots      chan struct{}
	forwarding atomic.Bool
	dropped    atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithMaxPending sets how many entries may wait for delivery before new ones are dropped.
func WithMaxPending(n int) BusOption {
	return func(b *Bus) {
		if n > 0 {
			b.slots = make(chan struct{}, n)
		}
	}
}

// NewBus creates a bus. Entries published while nothing forwards them, or while
// the pending limit is reached, are dropped.
func NewBus(logger watermill.LoggerAdapter, opts ...BusOption) *Bus {
	b := &Bus{
		logger: logger,
		slots:  make(chan struct{}, DefaultMaxPending),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.pubsub = gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: int64(cap(b.slots)),
			Persistent:          false,
		},
		logger,
	)
	return b
}

// Notify publishes the entry without waiting for delivery.
func (b *Bus) Notify(stack, level, pkg, message string) {
	if !b.forwarding.Load() {
		b.drop("no forwarder", nil)
		return
	}
	select {
	case b.slots <- struct{}{}:
	default:
		b.drop("pending limit reached", nil)
		return
	}

	msg, err := EntryToMessage(NewEntry(stack, level, pkg, message))
	if err == nil {
		err = b.pubsub.Publish(Topic, msg)
	}
	if err != nil {
		b.release()
		b.drop("publish failed", err)
	}
}

// Dropped returns how many entries were discarded without delivery.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Bus) drop(reason string, err error) {
	b.dropped.Add(1)
	fields := watermill.LogFields{"reason": reason}
	if err != nil {
		fields["error"] = err.Error()
	}
	b.logger.Debug("audit entry dropped", fields)
}

func (b *Bus) release() {
	select {
	case <-b.slots:
	default:
	}
}

// Forward subscribes to the bus and delivers every entry to sink on a detached
// goroutine until ctx is done or the bus is closed. Delivery errors are logged and dropped.
func (b *Bus) Forward(ctx context.Context, sink Sink) error {
	messages, err := b.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}

	b.forwarding.Store(true)
	go func() {
		defer b.forwarding.Store(false)
		for msg := range messages {
			entry, err := MessageToEntry(msg)
			if err == nil {
				err = sink.Send(ctx, entry)
			}
			if err != nil {
				b.logger.Debug("audit delivery failed", watermill.LogFields{
					"message_uuid": msg.UUID,
					"error":        err.Error(),
				})
			}
			msg.Ack()
			b.release()
		}
	}()

	return nil
}

// Close stops the bus. Pending entries are discarded.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
