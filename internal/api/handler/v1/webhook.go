package v1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clubsphere/clubsphere-api/internal/api/handler/v1/response"
	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/payment"
	"github.com/clubsphere/clubsphere-api/internal/service"
)

const maxWebhookBodyBytes = 64 * 1024

// WebhookParser verifies a provider webhook payload and extracts the
// completion signal it carries, if any.
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (payment.CompletionSignal, bool, error)
}

type WebhookHandler struct {
	parser WebhookParser
	svc    SponsorshipService
}

func NewWebhookHandler(parser WebhookParser, svc SponsorshipService) *WebhookHandler {
	return &WebhookHandler{
		parser: parser,
		svc:    svc,
	}
}

// HandlePaymentWebhook godoc
// @Summary      Receive payment provider webhooks
// @Description  Verifies the event signature and applies checkout outcomes to sponsorships. Events the service does not act on are acknowledged so the provider stops retrying them.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Router       /webhooks/payment [post]
func (h *WebhookHandler) HandlePaymentWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	signal, ok, err := h.parser.ParseWebhook(body, ctx.GetHeader("Stripe-Signature"))
	if err != nil {
		// Unverifiable payloads are rejected outright; nothing in them can
		// be trusted, including the event type.
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if !ok {
		ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	// Acknowledge deliveries for unknown sponsorships instead of asking the
	// provider to retry them forever.
	_, err = h.svc.CompleteSponsorship(context.WithoutCancel(ctx.Request.Context()), signal.SponsorshipID, signal.Status, domain.PaymentDetails{
		Method:      domain.PaymentMethodCard,
		Amount:      signal.Amount,
		ProviderRef: signal.ProviderRef,
	})
	if err != nil && !errors.Is(err, service.ErrSponsorshipNotFound) {
		zap.L().Error("failed to apply webhook completion",
			zap.Uint("sponsorship_id", signal.SponsorshipID),
			zap.String("target_status", string(signal.Status)),
			zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "received"})
}
