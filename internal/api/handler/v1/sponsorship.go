package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubsphere/clubsphere-api/internal/api/handler/v1/request"
	"github.com/clubsphere/clubsphere-api/internal/api/handler/v1/response"
	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/service"
)

type SponsorshipService interface {
	CreateSponsorship(ctx context.Context, actor domain.User, input service.CreateSponsorshipInput) (domain.Sponsorship, error)
	CompleteSponsorship(ctx context.Context, id uint, target domain.SponsorshipStatus, details domain.PaymentDetails) (domain.Sponsorship, error)
	GetSponsorship(ctx context.Context, id uint) (domain.Sponsorship, error)
}

type SponsorshipHandler struct {
	svc  SponsorshipService
	uSvc UserService
}

func NewSponsorshipHandler(svc SponsorshipService, uSvc UserService) *SponsorshipHandler {
	return &SponsorshipHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetTiers godoc
// @Summary      List sponsorship tiers
// @Description  Returns the tier table clients render pledge options from.
// @Tags         sponsorships
// @Produce      json
// @Success      200  {array}  domain.Tier
// @Router       /tiers [get]
func (h *SponsorshipHandler) HandleGetTiers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, domain.Tiers())
}

// HandleSponsorEvent godoc
// @Summary      Sponsor an event
// @Description  Creates a sponsorship pledge for the event. Only users with the "sponsor" role and a sponsor profile can sponsor. Sandbox requests with auto_complete simulate the full payment flow when the environment allows it.
// @Tags         sponsorships
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Param        request  body      request.SponsorEventRequest true "request body"
// @Success      201      {object}  response.SponsorshipResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Failure      502      {object}  response.Err
// @Router       /events/{eventID}/sponsor [post]
// @Security     BearerAuth
func (h *SponsorshipHandler) HandleSponsorEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	var req request.SponsorEventRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sponsorship, err := h.svc.CreateSponsorship(ctx.Request.Context(), user, service.CreateSponsorshipInput{
		EventID:      uint(eventID),
		Amount:       req.Amount,
		Tier:         req.Tier,
		Sandbox:      req.Sandbox,
		AutoComplete: req.AutoComplete,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotSponsor),
			errors.Is(err, service.ErrSponsorProfileMissing),
			errors.Is(err, service.ErrSandboxDisabled):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrTierAmountMismatch):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrPaymentProvider):
			response.RenderErr(ctx, response.ErrBadGateway(err))
		default:
			err = fmt.Errorf("v1.HandleSponsorEvent -> h.svc.CreateSponsorship -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	message := "sponsorship created"
	if sponsorship.Status == domain.SponsorshipCompleted {
		message = "sponsorship completed"
	}

	ctx.JSON(http.StatusCreated, response.SponsorshipResponse{
		Success: true,
		Sandbox: req.Sandbox,
		Message: message,
		Data:    sponsorship,
	})
}

// HandleGetSponsorship godoc
// @Summary      Get a sponsorship by ID
// @Tags         sponsorships
// @Produce      json
// @Param        sponsorshipID  path      int  true  "Sponsorship ID"
// @Success      200            {object}  domain.Sponsorship
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /sponsorships/{sponsorshipID} [get]
// @Security     BearerAuth
func (h *SponsorshipHandler) HandleGetSponsorship(ctx *gin.Context) {
	sponsorshipID, err := strconv.ParseUint(ctx.Param("sponsorshipID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid sponsorship ID: %w", err)))
		return
	}

	sponsorship, err := h.svc.GetSponsorship(ctx.Request.Context(), uint(sponsorshipID))
	if err != nil {
		if errors.Is(err, service.ErrSponsorshipNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sponsorship", "ID", sponsorshipID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSponsorship -> h.svc.GetSponsorship -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sponsorship)
}

// HandleUpdateSponsorshipStatus godoc
// @Summary      Report a sponsorship checkout outcome
// @Description  Transitions a PENDING sponsorship to COMPLETED or FAILED. Duplicate reports are acknowledged with the stored outcome rather than rejected.
// @Tags         sponsorships
// @Accept       json
// @Produce      json
// @Param        sponsorshipID  path      int  true  "Sponsorship ID"
// @Param        request        body      request.UpdateSponsorshipStatusRequest true "request body"
// @Success      200            {object}  response.SponsorshipResponse
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /sponsorships/{sponsorshipID}/status [put]
// @Security     BearerAuth
func (h *SponsorshipHandler) HandleUpdateSponsorshipStatus(ctx *gin.Context) {
	_, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sponsorshipID, err := strconv.ParseUint(ctx.Param("sponsorshipID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid sponsorship ID: %w", err)))
		return
	}

	var req request.UpdateSponsorshipStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var details domain.PaymentDetails
	if req.PaymentData != nil {
		details = domain.PaymentDetails{
			Method:      domain.PaymentMethod(req.PaymentData.Method),
			Amount:      req.PaymentData.Amount,
			ProviderRef: req.PaymentData.ProviderRef,
		}
	}

	sponsorship, err := h.svc.CompleteSponsorship(ctx.Request.Context(), uint(sponsorshipID), domain.SponsorshipStatus(req.Status), details)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSponsorshipNotFound):
			response.RenderErr(ctx, response.ErrNotFound("sponsorship", "ID", sponsorshipID))
		case errors.Is(err, service.ErrInvalidTargetStatus):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateSponsorshipStatus -> h.svc.CompleteSponsorship -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.SponsorshipResponse{
		Success: true,
		Message: fmt.Sprintf("sponsorship %v", sponsorship.Status),
		Data:    sponsorship,
	})
}
