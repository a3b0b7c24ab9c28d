package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/phyraph/gemki/internal/api/shared"
	"github.com/phyraph/gemki/internal/cards"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/export"
	"github.com/phyraph/gemki/internal/generation"
	"github.com/phyraph/gemki/internal/pipeline"
	"github.com/phyraph/gemki/internal/platform/logger"
	"github.com/phyraph/gemki/internal/reveal"
	"github.com/phyraph/gemki/internal/source"
)

// maxUploadMemory bounds the in-memory part of a multipart upload; larger
// files spill to disk.
const maxUploadMemory = 32 << 20

// FlashcardService is the part of the pipeline the handlers use.
type FlashcardService interface {
	Generate(ctx context.Context, in pipeline.GenerateInput) (*pipeline.Result, error)
	Stream(ctx context.Context, in pipeline.GenerateInput, emit func(reveal.Step)) error
}

// FlashcardHandler handles flashcard HTTP requests.
type FlashcardHandler struct {
	service         FlashcardService
	models          generation.Models
	defaultFilename string
}

// NewFlashcardHandler creates a FlashcardHandler. models is reported by the
// models endpoint and should match what service generates with.
func NewFlashcardHandler(service FlashcardService, models generation.Models, defaultFilename string) *FlashcardHandler {
	if defaultFilename == "" {
		defaultFilename = export.DefaultFilename
	}
	return &FlashcardHandler{
		service:         service,
		models:          models,
		defaultFilename: defaultFilename,
	}
}

// respondWithDomainError maps err to a status and safe message.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// decodeGenerate reads and validates a generation request. It writes the
// error response itself and reports false on failure.
func decodeGenerate(w http.ResponseWriter, r *http.Request) (pipeline.GenerateInput, bool) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return pipeline.GenerateInput{}, false
	}
	req.normalize()

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return pipeline.GenerateInput{}, false
	}

	model, err := domain.ParseModelTier(req.Model)
	if err != nil {
		respondWithDomainError(w, r, err)
		return pipeline.GenerateInput{}, false
	}

	apiKey := strings.TrimSpace(r.Header.Get(APIKeyHeader))
	if apiKey == "" {
		apiKey = strings.TrimSpace(req.APIKey)
	}
	if apiKey == "" {
		respondWithDomainError(w, r, domain.ErrMissingCredential)
		return pipeline.GenerateInput{}, false
	}

	return pipeline.GenerateInput{APIKey: apiKey, Model: model, Text: source.FromText(req.Text)}, true
}

// Generate handles POST /api/generate.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeGenerate(w, r)
	if !ok {
		return
	}

	res, err := h.service.Generate(r.Context(), in)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		RequestID: res.RequestID,
		Text:      res.Text,
		Cards:     cardsToResponse(res.Cards),
	})
}

// Stream handles POST /api/generate/stream. Reveal steps are sent as
// server-sent events named "step". Errors that occur before the first step
// use the normal JSON error format; later ones are sent as an "error" event.
func (h *FlashcardHandler) Stream(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeGenerate(w, r)
	if !ok {
		return
	}

	log := logger.FromContext(r.Context())
	rc := http.NewResponseController(w)
	started := false

	writeEvent := func(name string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Error("failed to encode stream event", "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
			log.Debug("stream write failed", "error", err)
			return
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			log.Debug("stream flush failed", "error", err)
		}
	}

	err := h.service.Stream(r.Context(), in, func(step reveal.Step) {
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		writeEvent("step", stepToResponse(step, cards.Parse(step.Text)))
	})

	switch {
	case err == nil:
	case !started:
		respondWithDomainError(w, r, err)
	case errors.Is(err, context.Canceled):
		log.Debug("client went away during stream")
	default:
		log.Warn("stream interrupted", "error", err)
		writeEvent("error", shared.ErrorResponse{
			Error:   GetSafeErrorMessage(err),
			TraceID: shared.GetTraceID(r.Context()),
		})
	}
}

// Source handles POST /api/source. The upload must be a multipart form with
// a "file" part declared as text/plain or text/csv.
func (h *FlashcardHandler) Source(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid upload", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Missing file", err)
		return
	}
	defer func() { _ = file.Close() }()

	text, err := source.Read(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("source file loaded",
		"filename", header.Filename,
		"size", header.Size)

	shared.RespondWithJSON(w, r, http.StatusOK, SourceResponse{Text: text})
}

// Parse handles POST /api/parse.
func (h *FlashcardHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ParseResponse{
		Cards: cardsToResponse(cards.Parse(req.Text)),
	})
}

// Export handles POST /api/export. The text is returned unchanged as a CSV
// attachment.
func (h *FlashcardHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	name := req.Filename
	if strings.TrimSpace(name) == "" {
		name = h.defaultFilename
	}
	filename, err := export.NormalizeFilename(name)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("X-Import-Hint", export.ImportHint)
	w.WriteHeader(http.StatusOK)

	if err := export.Download(w, req.Text); err != nil {
		logger.FromContext(r.Context()).Warn("export write failed", "error", err)
	}
}

// Models handles GET /api/models.
func (h *FlashcardHandler) Models(w http.ResponseWriter, r *http.Request) {
	tiers := []domain.ModelTier{domain.ModelFast, domain.ModelSmart}
	out := make([]ModelResponse, len(tiers))
	for i, t := range tiers {
		id, err := h.models.Resolve(t)
		if err != nil {
			respondWithDomainError(w, r, err)
			return
		}
		out[i] = ModelResponse{ID: t, Label: t.Label(), ModelID: id}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
