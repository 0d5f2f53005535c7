package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ArtifactMissing("artifacts/model.gob", fmt.Errorf("no such file"))
	wrapped := Wrap(base, "load predictor")

	assert.Equal(t, CodeArtifactMissing, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "load predictor")
	assert.Contains(t, wrapped.Error(), "no such file")
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("boom"), "step %d", 3)
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 3: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", ValidationError("bad"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestValidationFailedFields(t *testing.T) {
	err := Wrap(ValidationFailed([]string{"risk_taking", "age"}, []string{"risk_taking must be <= 10", "age must be >= 10"}), "predict")
	assert.Equal(t, []string{"risk_taking", "age"}, GetFields(err))
	assert.True(t, HasCode(err, CodeValidationError))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ValidationError("x"), http.StatusUnprocessableEntity},
		{InvalidInput("x"), http.StatusUnprocessableEntity},
		{NotFound("report"), http.StatusNotFound},
		{ArtifactCorrupt("model.gob", nil), http.StatusServiceUnavailable},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestMissingColumnsMessage(t *testing.T) {
	err := MissingColumns([]string{"Age", "Tech-Savviness"})
	assert.Equal(t, CodeMissingColumns, err.Code)
	assert.Contains(t, err.Error(), "Age, Tech-Savviness")
}
