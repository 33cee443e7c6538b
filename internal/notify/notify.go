// Package notify keeps the transient messages shown to the user.
package notify

import (
	"github.com/zyedidia/generic/list"
)

// Level is the severity of a notification.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Danger
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "info"
	}
}

type Notification struct {
	Message string
	Level   Level
}

// ID keys a notification. IDs grow monotonically and are never reused.
type ID uint64

type Entry struct {
	ID ID
	Notification
}

// Queue is an insertion-ordered set of notifications with O(1) removal by ID.
type Queue struct {
	entries *list.List[Entry]
	nodes   map[ID]*list.Node[Entry]
	last    ID
}

func New() *Queue {
	return &Queue{
		entries: list.New[Entry](),
		nodes:   make(map[ID]*list.Node[Entry]),
	}
}

// Push appends n and returns its ID.
func (q *Queue) Push(n Notification) ID {
	q.last++
	node := &list.Node[Entry]{Value: Entry{ID: q.last, Notification: n}}
	q.entries.PushBackNode(node)
	q.nodes[q.last] = node
	return q.last
}

// Remove drops the notification with the given ID, if present.
func (q *Queue) Remove(id ID) {
	node, ok := q.nodes[id]
	if !ok {
		return
	}
	q.entries.Remove(node)
	delete(q.nodes, id)
}

// Clear drops everything. IDs keep counting from where they were.
func (q *Queue) Clear() {
	q.entries = list.New[Entry]()
	q.nodes = make(map[ID]*list.Node[Entry])
}

func (q *Queue) Len() int {
	return len(q.nodes)
}

// Each calls fn for every entry in insertion order. fn must not modify q.
func (q *Queue) Each(fn func(Entry)) {
	for node := q.entries.Front; node != nil; node = node.Next {
		fn(node.Value)
	}
}

// List returns a snapshot of the entries in insertion order.
func (q *Queue) List() []Entry {
	entries := make([]Entry, 0, q.Len())
	q.Each(func(e Entry) {
		entries = append(entries, e)
	})
	return entries
}
