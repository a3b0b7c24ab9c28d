// Package domain contains the core entities of the flashcard pipeline: model
// tiers, generation requests and results, flashcards, and the error taxonomy
// shared by every layer. It has no knowledge of transports or providers.
package domain
