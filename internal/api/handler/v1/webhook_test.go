package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/payment"
	"github.com/clubsphere/clubsphere-api/internal/service"
)

type stubWebhookParser struct {
	signal payment.CompletionSignal
	ok     bool
	err    error

	gotPayload   []byte
	gotSignature string
}

func (s *stubWebhookParser) ParseWebhook(payload []byte, signature string) (payment.CompletionSignal, bool, error) {
	s.gotPayload = payload
	s.gotSignature = signature

	return s.signal, s.ok, s.err
}

func newWebhookTestRouter(parser WebhookParser, svc SponsorshipService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewWebhookHandler(parser, svc)
	router := gin.New()
	router.POST("/api/v1/webhooks/payment", h.HandlePaymentWebhook)

	return router
}

func postWebhook(router *gin.Engine, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestWebhookHandler_HandlePaymentWebhook(t *testing.T) {
	t.Run("verified completion is applied", func(t *testing.T) {
		parser := &stubWebhookParser{
			signal: payment.CompletionSignal{
				SponsorshipID: 17,
				Status:        domain.SponsorshipCompleted,
				ProviderRef:   "cs_test_123",
				Amount:        750,
			},
			ok: true,
		}
		svc := &stubSponsorshipService{sponsorship: domain.Sponsorship{ID: 17, Status: domain.SponsorshipCompleted}}
		router := newWebhookTestRouter(parser, svc)

		w := postWebhook(router, `{"type": "checkout.session.completed"}`, "t=1,v1=sig")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(17), svc.gotID)
		assert.Equal(t, domain.SponsorshipCompleted, svc.gotTarget)
		assert.Equal(t, "t=1,v1=sig", parser.gotSignature)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		parser := &stubWebhookParser{err: payment.ErrInvalidSignature}
		svc := &stubSponsorshipService{}
		router := newWebhookTestRouter(parser, svc)

		w := postWebhook(router, `{}`, "t=1,v1=bad")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, svc.gotID, "unverified events must never reach the service")
	})

	t.Run("irrelevant event is acknowledged", func(t *testing.T) {
		parser := &stubWebhookParser{ok: false}
		svc := &stubSponsorshipService{}
		router := newWebhookTestRouter(parser, svc)

		w := postWebhook(router, `{"type": "invoice.paid"}`, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, svc.gotID)
	})

	t.Run("unknown sponsorship is acknowledged", func(t *testing.T) {
		parser := &stubWebhookParser{
			signal: payment.CompletionSignal{SponsorshipID: 404, Status: domain.SponsorshipFailed},
			ok:     true,
		}
		svc := &stubSponsorshipService{err: service.ErrSponsorshipNotFound}
		router := newWebhookTestRouter(parser, svc)

		w := postWebhook(router, `{}`, "t=1,v1=sig")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("persistence failure returns 500 for provider retry", func(t *testing.T) {
		parser := &stubWebhookParser{
			signal: payment.CompletionSignal{SponsorshipID: 17, Status: domain.SponsorshipCompleted},
			ok:     true,
		}
		svc := &stubSponsorshipService{err: errors.New("db down")}
		router := newWebhookTestRouter(parser, svc)

		w := postWebhook(router, `{}`, "t=1,v1=sig")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
