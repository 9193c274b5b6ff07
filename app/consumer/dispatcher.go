// Package consumer fans broker messages out to registered processors.
// Each subscriber gets its own durable consumer on the stream, so every
// subscriber sees every message on its topic; subscribers never compete
// for deliveries.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"inventory-service/pkg/ctxutil"

	"github.com/nats-io/nats.go/jetstream"
)

var ErrParserConflict = errors.New("topic already registered with a different parser")

// Parser decodes a raw broker payload into the event type the topic's
// processors expect. Name identifies the parser so re-registering a
// topic with a conflicting parser fails instead of silently overwriting.
type Parser struct {
	Name  string
	Parse func(data []byte) (any, error)
}

// Processor handles one parsed event per delivery. A non-nil error
// leaves the message unacknowledged and subject to redelivery.
type Processor interface {
	Name() string
	Process(ctx context.Context, event any) error
}

type registration struct {
	parser     Parser
	processors []Processor
}

type Dispatcher struct {
	js     jetstream.JetStream
	stream string

	mu       sync.Mutex
	registry map[string]*registration
	active   bool
	consume  []jetstream.ConsumeContext
}

func NewDispatcher(js jetstream.JetStream, stream string) *Dispatcher {
	return &Dispatcher{
		js:       js,
		stream:   stream,
		registry: make(map[string]*registration),
	}
}

// Subscribe adds a processor for topic. Repeated calls for the same
// topic append subscribers; the parser must match the one on file.
func (d *Dispatcher) Subscribe(topic string, parser Parser, processor Processor) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return fmt.Errorf("subscribe %s: dispatcher already activated", topic)
	}

	reg, ok := d.registry[topic]
	if !ok {
		d.registry[topic] = &registration{
			parser:     parser,
			processors: []Processor{processor},
		}
		return nil
	}

	if reg.parser.Name != parser.Name {
		return fmt.Errorf("%w: topic %s has parser %s, got %s",
			ErrParserConflict, topic, reg.parser.Name, parser.Name)
	}

	reg.processors = append(reg.processors, processor)
	return nil
}

// Activate creates one durable consumer per (topic, subscriber) pair and
// starts its consume loop. With an empty registry it returns without
// touching the broker.
func (d *Dispatcher) Activate(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.registry) == 0 {
		return nil
	}
	if d.active {
		return errors.New("dispatcher already activated")
	}

	for topic, reg := range d.registry {
		for _, processor := range reg.processors {
			cons, err := d.js.CreateOrUpdateConsumer(ctx, d.stream, jetstream.ConsumerConfig{
				Durable:       fmt.Sprintf("%s-%s", topic, processor.Name()),
				FilterSubject: topic,
				AckPolicy:     jetstream.AckExplicitPolicy,
			})
			if err != nil {
				slog.ErrorContext(ctx, "[Dispatcher] Activate", "createConsumer", err)
				return fmt.Errorf("create consumer for %s/%s: %w", topic, processor.Name(), err)
			}

			cc, err := cons.Consume(d.handler(reg.parser, processor))
			if err != nil {
				slog.ErrorContext(ctx, "[Dispatcher] Activate", "consume", err)
				return fmt.Errorf("consume %s/%s: %w", topic, processor.Name(), err)
			}
			d.consume = append(d.consume, cc)

			slog.InfoContext(ctx, "[Dispatcher] Activate", "topic", topic, "processor", processor.Name())
		}
	}

	d.active = true
	return nil
}

func (d *Dispatcher) handler(parser Parser, processor Processor) jetstream.MessageHandler {
	return func(msg jetstream.Msg) {
		ctx := context.Background()
		if meta, err := msg.Metadata(); err == nil {
			ctx = ctxutil.WithMessageID(ctx, fmt.Sprintf("%s-%d", msg.Subject(), meta.Sequence.Stream))
		}

		if err := d.dispatch(ctx, parser, processor, msg.Data()); err != nil {
			slog.ErrorContext(ctx, "[Dispatcher] handler", "process", err)
			if nakErr := msg.Nak(); nakErr != nil {
				slog.WarnContext(ctx, "[Dispatcher] handler", "nak", nakErr)
			}
			return
		}

		if err := msg.Ack(); err != nil {
			slog.WarnContext(ctx, "[Dispatcher] handler", "ack", err)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, parser Parser, processor Processor, data []byte) error {
	event, err := parser.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", parser.Name, err)
	}
	return processor.Process(ctx, event)
}

// Shutdown stops the consume loops without waiting for in-flight
// handlers; unacknowledged messages are redelivered on reconnect.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, cc := range d.consume {
		cc.Stop()
	}
	d.consume = nil
	d.active = false
}
