// Package queue provides a transaction-level bounded FIFO of words. It
// has no notion of cycles; the harness uses it as the ordering oracle
// when checking the cycle-accurate controllers.
package queue

import (
	"log"

	"github.com/sarchlab/akita/v4/sim"
)

// HookPosPush marks a word entering the queue.
var HookPosPush = &sim.HookPos{Name: "Queue Push"}

// HookPosPop marks a word leaving the queue.
var HookPosPop = &sim.HookPos{Name: "Queue Pop"}

// Queue is a bounded FIFO of words.
type Queue struct {
	sim.HookableBase

	name     string
	capacity int
	words    []uint64
}

// NewQueue creates a queue holding at most capacity words.
func NewQueue(name string, capacity int) *Queue {
	sim.NameMustBeValid(name)

	if capacity < 1 {
		log.Panicf("queue capacity must be >= 1, got %d", capacity)
	}

	return &Queue{
		name:     name,
		capacity: capacity,
	}
}

// Name returns the name of the queue.
func (q *Queue) Name() string {
	return q.name
}

// CanPush checks if the queue can accept another word.
func (q *Queue) CanPush() bool {
	return len(q.words) < q.capacity
}

// Push adds a word at the tail. Pushing into a full queue panics; the
// caller is expected to check CanPush first.
func (q *Queue) Push(word uint64) {
	if len(q.words) >= q.capacity {
		log.Panic("queue overflow")
	}

	q.words = append(q.words, word)

	if q.NumHooks() > 0 {
		q.InvokeHook(sim.HookCtx{
			Domain: q,
			Pos:    HookPosPush,
			Item:   word,
			Detail: nil,
		})
	}
}

// Pop removes and returns the word at the head. The second return value
// is false when the queue is empty.
func (q *Queue) Pop() (uint64, bool) {
	if len(q.words) == 0 {
		return 0, false
	}

	word := q.words[0]
	q.words = q.words[1:]

	if q.NumHooks() > 0 {
		q.InvokeHook(sim.HookCtx{
			Domain: q,
			Pos:    HookPosPop,
			Item:   word,
			Detail: nil,
		})
	}

	return word, true
}

// Peek returns the word at the head without removing it. The second
// return value is false when the queue is empty.
func (q *Queue) Peek() (uint64, bool) {
	if len(q.words) == 0 {
		return 0, false
	}

	return q.words[0], true
}

// Size returns the number of words in the queue.
func (q *Queue) Size() int {
	return len(q.words)
}

// Capacity returns the maximum number of words the queue can hold.
func (q *Queue) Capacity() int {
	return q.capacity
}

// Clear removes all words from the queue.
func (q *Queue) Clear() {
	q.words = nil
}
