package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     credentialsRequest
		invalid []string
	}{
		{name: "valid", req: credentialsRequest{Email: "a@x.com", Password: "pw1"}},
		{name: "missing both", req: credentialsRequest{}, invalid: []string{"email", "password"}},
		{name: "bad email", req: credentialsRequest{Email: "not-an-email", Password: "pw1"}, invalid: []string{"email"}},
		{name: "long password", req: credentialsRequest{Email: "a@x.com", Password: strings.Repeat("p", 129)}, invalid: []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(tt.req)
			if len(tt.invalid) == 0 {
				assert.Nil(t, details)
				return
			}
			assert.Len(t, details, len(tt.invalid))
			for _, field := range tt.invalid {
				assert.Contains(t, details, field)
			}
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ok     bool
		status int
		code   string
	}{
		{name: "valid", body: `{"email":"a@x.com","password":"pw1"}`, ok: true},
		{name: "malformed", body: `{"email":`, status: http.StatusBadRequest, code: CodeInvalidJSON},
		{name: "unknown field", body: `{"email":"a@x.com","password":"pw1","admin":true}`, status: http.StatusBadRequest, code: CodeInvalidJSON},
		{name: "missing password", body: `{"email":"a@x.com"}`, status: http.StatusBadRequest, code: CodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var body credentialsRequest
			ok := DecodeAndValidate(rec, req, &body)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				return
			}
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeEnvelope(t, rec).Code)
		})
	}
}

func TestValidateUUID(t *testing.T) {
	assert.Error(t, ValidateUUID(""))
	assert.Error(t, ValidateUUID("not-a-uuid"))
	assert.NoError(t, ValidateUUID("6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"))
}
