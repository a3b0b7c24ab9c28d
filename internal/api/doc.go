// Package api exposes the flashcard pipeline over HTTP. Handlers decode and
// validate requests, call the pipeline, and translate domain errors into
// status codes and the fixed user-facing messages. Raw error text never
// reaches a client.
package api
