package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"lab_name" validate:"required,max=5"`
	Seats int    `json:"seats" validate:"gte=1"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var s sample
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"lab_name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(r, &s))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"lab_name":"x","seats":2}`))
	require.NoError(t, DecodeJSON(r, &s))
	assert.Equal(t, 2, s.Seats)
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	details := ValidateStruct(sample{Name: "toolong", Seats: 0, Kind: "c"})

	assert.Equal(t, "не более 5 символов", details["lab_name"])
	assert.Equal(t, "должно быть не меньше 1", details["seats"])
	assert.Equal(t, "допустимые значения: a, b", details["kind"])

	assert.Nil(t, ValidateStruct(sample{Name: "ok", Seats: 1}))
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, msgInternalError, body.Error)
	assert.Empty(t, body.Details)
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err := PathInt64(r, "id")
		assert.Error(t, err, raw)
	}
}
