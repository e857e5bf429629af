package public

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pazar-next/internal/http/response"
	"github.com/pazar-next/internal/service"

	"github.com/gin-gonic/gin"
)

func TestRespondWithMappedErrorSurfacesWrappedMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)

	err := fmt.Errorf("%w for %s", service.ErrInsufficientStock, "Akıllı Saat")
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order create failed")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Akıllı Saat") {
		t.Fatalf("expected body to name the product, got %s", w.Body.String())
	}
}

func TestRespondWithMappedErrorKeepsStaticMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)

	respondWithMappedError(c, service.ErrCartEmpty, orderCreateErrorRules, response.CodeInternal, "order create failed")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cart is empty") {
		t.Fatalf("expected static message, got %s", w.Body.String())
	}
}
