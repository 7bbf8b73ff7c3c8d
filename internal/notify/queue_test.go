package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueEvictsOldest(t *testing.T) {
	q := NewQueue(2, time.Minute)
	q.Push(New(Info, "one"))
	q.Push(New(Info, "two"))
	q.Push(New(Error, "three"))

	items := q.Items()
	require.Len(t, items, 2)
	require.Equal(t, "two", items[0].Text)
	require.Equal(t, "three", items[1].Text)
}

func TestQueueExpire(t *testing.T) {
	q := NewQueue(5, time.Second)
	now := time.Now()
	q.Push(Notification{Text: "old", CreatedAt: now.Add(-2 * time.Second)})
	q.Push(Notification{Text: "fresh", CreatedAt: now})

	require.Equal(t, 1, q.Expire(now))
	items := q.Items()
	require.Len(t, items, 1)
	require.Equal(t, "fresh", items[0].Text)
	require.NotEmpty(t, items[0].ID)
}

func TestQueueDismiss(t *testing.T) {
	q := NewQueue(0, 0)
	a := New(Info, "a")
	b := New(Success, "b")
	q.Push(a)
	q.Push(b)

	require.True(t, q.DismissLatest())
	require.Equal(t, []Notification{a}, q.Items())
	require.True(t, q.DismissLatest())
	require.False(t, q.DismissLatest())
	require.Zero(t, q.Len())
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	var sink Sink = Writer{W: &buf}
	sink.Notify(New(Error, "Enter wallet ID"))
	require.Equal(t, "[error] Enter wallet ID\n", buf.String())
}
