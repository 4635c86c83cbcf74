package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrReportNotFound, "Relatório não encontrado", map[string]string{"id": "x"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":"REP_001","message":"Relatório não encontrado","details":{"id":"x"}}`, rec.Body.String())
}

func TestStatusFor_UnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusFor(ErrPayloadTooLarge))
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrInvalidFormat).Code)

	apiErr := FromError(errors.New("falhou"), ErrInvalidFormat)
	assert.Equal(t, APIError{Code: ErrInvalidFormat, Message: "falhou"}, apiErr)
}
