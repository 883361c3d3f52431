package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisherPublish(t *testing.T) {
	w := &recordingWriter{}
	p := &Publisher{writer: w}

	err := p.Publish(context.Background(), "account_snapshotted", "7", map[string]any{"client": 7})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "account_snapshotted", w.msgs[0].Topic)
	assert.Equal(t, []byte("7"), w.msgs[0].Key)
	assert.JSONEq(t, `{"client":7}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisherErrors(t *testing.T) {
	boom := errors.New("broker down")
	p := &Publisher{writer: &recordingWriter{err: boom}}

	err := p.Publish(context.Background(), "t", "k", struct{}{})
	assert.ErrorIs(t, err, boom)

	err = p.Publish(context.Background(), "t", "k", make(chan int))
	assert.Error(t, err)
}

func TestNewPublisherWriterConfig(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"})
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Empty(t, w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
