// Package generation defines the boundary between the flashcard pipeline and
// hosted AI/LLM services used for content generation.
//
// The pipeline depends on the one-operation Generator interface. Client is the
// implementation used everywhere: it enforces the credential precondition,
// resolves a model tier to a provider model id, and collapses every provider
// failure into domain.ErrGenerationFailed. Providers (Gemini, Groq) live under
// internal/platform and implement Completer.
package generation
