package thermalprinter

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"
	"sync/atomic"
)

var ErrShutdown = errors.New("shutdown")

// EventCode identifies a session state transition.
type EventCode byte

const (
	EventConnected EventCode = iota
	EventDisconnected
)

var eventCodeText = map[EventCode]string{
	EventConnected:    "Connected",
	EventDisconnected: "Disconnected",
}

func (c EventCode) String() string {
	if s, ok := eventCodeText[c]; ok {
		return s
	}
	return "Unknown"
}

// Event is a session state transition along with the device it concerns.
type Event struct {
	Code   EventCode
	Device Device
}

type subscription struct {
	isClosed    atomic.Bool
	isAbandoned atomic.Bool
	ch          chan Event
	done        chan struct{}
}

func (s *subscription) cancel() {
	if s.isClosed.CompareAndSwap(false, true) {
		close(s.ch)
	}
}

func (s *subscription) abandon() {
	if s.isAbandoned.CompareAndSwap(false, true) {
		close(s.done)
	}
}

// publish delivers the event unless the subscriber has already abandoned
// the stream.
func (s *subscription) publish(event Event) {
	select {
	case s.ch <- event:
	case <-s.done:
	}
}

// EventHub fans session state transitions out to subscribers so callers
// can observe connection loss without polling Status. Publish blocks until
// every subscriber has received the event.
type EventHub struct {
	lck           sync.RWMutex
	subscriptions map[EventCode][]*subscription
}

func NewEventHub() *EventHub {
	return &EventHub{
		subscriptions: make(map[EventCode][]*subscription),
	}
}

func (h *EventHub) register(codes []EventCode, s *subscription) func() {
	h.lck.Lock()
	defer h.lck.Unlock()

	for _, code := range codes {
		h.subscriptions[code] = append(h.subscriptions[code], s)
	}

	return func() {
		h.lck.Lock()
		defer h.lck.Unlock()

		defer s.cancel()

		for _, code := range codes {
			h.subscriptions[code] = slices.DeleteFunc(h.subscriptions[code], func(ss *subscription) bool {
				return s == ss
			})
		}
	}
}

// Subscribe returns the stream of events with the given codes. The stream
// ends with ctx.Err() when ctx is done and with ErrShutdown when the hub
// shuts down.
func (h *EventHub) Subscribe(
	ctx context.Context,
	codes ...EventCode,
) iter.Seq2[Event, error] {
	s := &subscription{
		ch:   make(chan Event),
		done: make(chan struct{}),
	}

	release := h.register(codes, s)

	return func(yield func(Event, error) bool) {
		defer release()
		defer s.abandon()

		for {
			select {
			case event, ok := <-s.ch:
				if !ok {
					yield(Event{}, ErrShutdown)
					return
				}
				if !yield(event, nil) {
					return
				}
			case <-ctx.Done():
				yield(Event{}, ctx.Err())
				return
			}
		}
	}
}

func (h *EventHub) Publish(event Event) {
	h.lck.RLock()
	defer h.lck.RUnlock()

	for _, s := range h.subscriptions[event.Code] {
		s.publish(event)
	}
}

// Shutdown cancels all subscribers.
func (h *EventHub) Shutdown() {
	h.lck.Lock()
	defer h.lck.Unlock()

	for _, subs := range h.subscriptions {
		for _, sub := range subs {
			sub.cancel()
		}
	}

	h.subscriptions = make(map[EventCode][]*subscription)
}
