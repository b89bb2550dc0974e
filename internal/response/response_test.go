package response_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/response"
)

func TestOKWithData(t *testing.T) {
	resp := response.OKWithData(map[string]string{"id": "1"})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Equal(t, map[string]string{"id": "1"}, resp.Data)
}

func TestError(t *testing.T) {
	resp := response.Error("boom")
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "boom", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
		Date  string `validate:"required,datetime=2006-01-02"`
	}

	err := validator.New().Struct(req{Email: "not-an-email", Date: "05/10/2025"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field Date must be a date in format YYYY-MM-DD")
}
