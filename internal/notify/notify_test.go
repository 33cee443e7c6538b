package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(q *Queue) []string {
	var out []string
	q.Each(func(e Entry) {
		out = append(out, e.Message)
	})
	return out
}

func TestQueue_PushKeepsInsertionOrder(t *testing.T) {
	q := New()
	a := q.Push(Notification{Message: "a", Level: Info})
	b := q.Push(Notification{Message: "b", Level: Warning})
	c := q.Push(Notification{Message: "c", Level: Success})

	assert.Less(t, a, b)
	assert.Less(t, b, c)
	assert.Equal(t, []string{"a", "b", "c"}, messages(q))
	assert.Equal(t, 3, q.Len())

	entries := q.List()
	require.Len(t, entries, 3)
	assert.Equal(t, Warning, entries[1].Level)
	assert.Equal(t, b, entries[1].ID)
}

func TestQueue_Remove(t *testing.T) {
	q := New()
	a := q.Push(Notification{Message: "a"})
	b := q.Push(Notification{Message: "b"})
	c := q.Push(Notification{Message: "c"})

	q.Remove(b)
	assert.Equal(t, []string{"a", "c"}, messages(q))

	q.Remove(b)
	q.Remove(ID(999))
	assert.Equal(t, 2, q.Len())

	q.Remove(a)
	q.Remove(c)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.List())
}

func TestQueue_IDsNeverReused(t *testing.T) {
	q := New()
	a := q.Push(Notification{Message: "a"})
	q.Remove(a)
	b := q.Push(Notification{Message: "b"})
	assert.Greater(t, b, a)

	q.Clear()
	assert.Equal(t, 0, q.Len())
	c := q.Push(Notification{Message: "c"})
	assert.Greater(t, c, b)
	assert.Equal(t, []string{"c"}, messages(q))
}

func TestQueue_NoDeduplication(t *testing.T) {
	q := New()
	q.Push(Notification{Message: "same"})
	q.Push(Notification{Message: "same"})
	assert.Equal(t, []string{"same", "same"}, messages(q))
}

func TestQueue_RemovingFront(t *testing.T) {
	q := New()
	a := q.Push(Notification{Message: "a"})
	b := q.Push(Notification{Message: "b"})
	q.Remove(a)

	list := q.List()
	require.Len(t, list, 1)
	assert.Equal(t, b, list[0].ID)
}

func TestQueue_EachIsRestartable(t *testing.T) {
	q := New()
	q.Push(Notification{Message: "x"})
	q.Push(Notification{Message: "y"})
	assert.Equal(t, messages(q), messages(q))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "danger", Danger.String())
}
