package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"genvo-server/service"
	"genvo-server/videogen"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{}

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"bad input", ErrInvalidInput(errors.New("name is required")), http.StatusBadRequest, `{"error":"invalid input: name is required"}`},
		{"app not found", ErrProjectNotFound, http.StatusNotFound, `{"error":"project not found"}`},
		{"wrapped sentinel", fmt.Errorf("start: %w", service.ErrBranchNotFound), http.StatusNotFound, `{"error":"start: branch not found"}`},
		{"invalid key", videogen.ErrInvalidAPIKey, http.StatusUnauthorized, `{"error":"Invalid API key. Please check your fal.ai API key."}`},
		{"credits", fmt.Errorf("run: %w", videogen.ErrInsufficientCredits), http.StatusPaymentRequired, `{"error":"Insufficient credits. Please add credits to your fal.ai account."}`},
		{"generic generation", videogen.ErrNoVideoURL, http.StatusInternalServerError, `{"error":"No video URL returned from API"}`},
		{"other", errors.New("boom"), http.StatusInternalServerError, `{"error":"boom"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}
