package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paguielng/shopisapp/internal/http/handlers"
)

type bindTarget struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"omitempty,gte=0"`
}

func bindRouter() *gin.Engine {
	r := gin.New()

	r.POST("/bind", func(c *gin.Context) {
		var in bindTarget
		if !handlers.BindJSON(c, &in) {
			return
		}
		c.JSON(http.StatusOK, in)
	})

	return r
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantInBody     string
	}{
		{
			name:           "valid",
			body:           `{"name":"Milk","price":3.99}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing_required_field",
			body:           `{"price":1}`,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "name is required",
		},
		{
			name:           "negative_price",
			body:           `{"name":"Milk","price":-1}`,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "price",
		},
		{
			name:           "broken_json",
			body:           `{"name":`,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "not valid JSON",
		},
		{
			name:           "type_mismatch",
			body:           `{"name":"Milk","price":"free"}`,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "price must be of type",
		},
	}

	r := bindRouter()

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/bind", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantInBody != "" && !strings.Contains(w.Body.String(), tt.wantInBody) {
				t.Errorf("body missing %q: %s", tt.wantInBody, w.Body.String())
			}
		})
	}
}
