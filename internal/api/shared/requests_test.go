package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Text  string `json:"text"  validate:"required"`
	Model string `json:"model" validate:"omitempty,oneof=fast smart"`
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("custom rule failed")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"a: b","model":"fast"}`))
	var got sampleRequest
	require.NoError(t, DecodeJSON(r, &got))
	assert.Equal(t, sampleRequest{Text: "a: b", Model: "fast"}, got)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	assert.Error(t, DecodeJSON(r, &got))
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Text: "x"}))
	assert.Error(t, ValidateRequest(sampleRequest{}))
	assert.Error(t, ValidateRequest(sampleRequest{Text: "x", Model: "ultra"}))

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "custom rule failed")
}
