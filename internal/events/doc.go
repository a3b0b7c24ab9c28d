// Package events provides a small in-process publish/subscribe mechanism.
//
// Components publish typed events without knowing who consumes them. The
// session store uses it to announce every state transition so that a renderer
// (terminal or otherwise) can redraw without being coupled to the reducer.
//
// The primary components are:
// - Event: an envelope carrying a typed payload
// - Handler: implemented by consumers
// - InMemoryEmitter: dispatches events to handlers in registration order
package events
