package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	name string
	err  error

	mu     sync.Mutex
	events []any
}

func (p *recordingProcessor) Name() string { return p.name }

func (p *recordingProcessor) Process(ctx context.Context, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingProcessor) seen() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.events...)
}

func stringParser(name string) Parser {
	return Parser{
		Name: name,
		Parse: func(data []byte) (any, error) {
			return string(data), nil
		},
	}
}

func TestSubscribe_AppendsSubscribers(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	parser := stringParser("string")

	require.NoError(t, d.Subscribe("inventory", parser, &recordingProcessor{name: "first"}))
	require.NoError(t, d.Subscribe("inventory", parser, &recordingProcessor{name: "second"}))

	assert.Len(t, d.registry, 1)
	assert.Len(t, d.registry["inventory"].processors, 2)
}

func TestSubscribe_ParserConflict(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")

	require.NoError(t, d.Subscribe("inventory", stringParser("string"), &recordingProcessor{name: "first"}))

	err := d.Subscribe("inventory", stringParser("other"), &recordingProcessor{name: "second"})
	assert.ErrorIs(t, err, ErrParserConflict)
	assert.Len(t, d.registry["inventory"].processors, 1)
}

func TestActivate_EmptyRegistryIsNoOp(t *testing.T) {
	// nil JetStream handle: any broker operation would panic, so a nil
	// return proves none happened
	d := NewDispatcher(nil, "INVENTORY")

	assert.NoError(t, d.Activate(context.Background()))
	assert.False(t, d.active)
}

func TestSubscribe_AfterActivate(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	d.active = true

	err := d.Subscribe("inventory", stringParser("string"), &recordingProcessor{name: "late"})
	assert.Error(t, err)
}

func TestDispatch_FanOut(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	parser := stringParser("string")
	first := &recordingProcessor{name: "first"}
	second := &recordingProcessor{name: "second"}

	require.NoError(t, d.Subscribe("inventory", parser, first))
	require.NoError(t, d.Subscribe("inventory", parser, second))

	// each subscriber owns an independent consumer loop; model one
	// delivery reaching every loop
	reg := d.registry["inventory"]
	for _, processor := range reg.processors {
		require.NoError(t, d.dispatch(context.Background(), reg.parser, processor, []byte("payload")))
	}

	assert.Equal(t, []any{"payload"}, first.seen())
	assert.Equal(t, []any{"payload"}, second.seen())
}

func TestDispatch_ParseFailure(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	processor := &recordingProcessor{name: "proc"}
	parser := Parser{
		Name: "failing",
		Parse: func(data []byte) (any, error) {
			return nil, errors.New("bad payload")
		},
	}

	err := d.dispatch(context.Background(), parser, processor, []byte("junk"))
	assert.Error(t, err)
	assert.Empty(t, processor.seen(), "processor must not run on parse failure")
}

// fakeMsg covers the methods the handler touches; anything else panics
// via the embedded nil interface.
type fakeMsg struct {
	jetstream.Msg
	data    []byte
	subject string

	acked bool
	naked bool
}

func (m *fakeMsg) Data() []byte    { return m.data }
func (m *fakeMsg) Subject() string { return m.subject }

func (m *fakeMsg) Metadata() (*jetstream.MsgMetadata, error) {
	return &jetstream.MsgMetadata{Sequence: jetstream.SequencePair{Stream: 7}}, nil
}

func (m *fakeMsg) Ack() error {
	m.acked = true
	return nil
}

func (m *fakeMsg) Nak() error {
	m.naked = true
	return nil
}

func TestHandler_AcksOnSuccess(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	processor := &recordingProcessor{name: "proc"}
	msg := &fakeMsg{data: []byte("payload"), subject: "inventory"}

	d.handler(stringParser("string"), processor)(msg)

	assert.True(t, msg.acked, "successful processing must ack the message")
	assert.False(t, msg.naked)
	assert.Equal(t, []any{"payload"}, processor.seen())
}

func TestHandler_NaksOnParseFailure(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	processor := &recordingProcessor{name: "proc"}
	parser := Parser{
		Name: "failing",
		Parse: func(data []byte) (any, error) {
			return nil, errors.New("bad payload")
		},
	}
	msg := &fakeMsg{data: []byte("junk"), subject: "inventory"}

	d.handler(parser, processor)(msg)

	assert.True(t, msg.naked, "unparseable message must be left for redelivery")
	assert.False(t, msg.acked, "unparseable message must never be acked")
	assert.Empty(t, processor.seen())
}

func TestHandler_NaksOnProcessorFailure(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	processor := &recordingProcessor{name: "proc", err: errors.New("store down")}
	msg := &fakeMsg{data: []byte("payload"), subject: "inventory"}

	d.handler(stringParser("string"), processor)(msg)

	assert.True(t, msg.naked, "failed processing must be left for redelivery")
	assert.False(t, msg.acked, "failed processing must never be acked")
}

func TestDispatch_ProcessorFailure(t *testing.T) {
	d := NewDispatcher(nil, "INVENTORY")
	processor := &recordingProcessor{name: "proc", err: errors.New("store down")}

	err := d.dispatch(context.Background(), stringParser("string"), processor, []byte("payload"))
	assert.Error(t, err, "failed processing must surface so the message is not acked")
}
