// Package gemini provides a generation.Completer backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a single prompt
// into a GenerateContent call via the google.golang.org/genai client and
// flattens the reply into plain text. A fresh genai client is built for every
// call with the caller's API key, so no credentials are held between calls.
//
// Responses without candidates, and responses stopped by safety filters, are
// reported as generation.ErrInvalidResponse and generation.ErrContentBlocked
// respectively. Retries are not attempted.
package gemini
