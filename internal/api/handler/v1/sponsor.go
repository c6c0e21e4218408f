package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsphere/clubsphere-api/internal/api/handler/v1/request"
	"github.com/clubsphere/clubsphere-api/internal/api/handler/v1/response"
	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/service"
)

type SponsorHandler struct {
	uSvc UserService
}

func NewSponsorHandler(uSvc UserService) *SponsorHandler {
	return &SponsorHandler{
		uSvc: uSvc,
	}
}

// HandleGetSponsorProfile godoc
// @Summary      Get the authenticated sponsor's profile
// @Tags         sponsors
// @Produce      json
// @Success      200  {object}  domain.SponsorProfile
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sponsor/profile [get]
// @Security     BearerAuth
func (h *SponsorHandler) HandleGetSponsorProfile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleSponsor {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a sponsor", user.ID)))
		return
	}

	profile, err := h.uSvc.GetSponsorProfile(ctx.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrSponsorProfileNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sponsor profile", "userID", user.ID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSponsorProfile -> h.uSvc.GetSponsorProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUpsertSponsorProfile godoc
// @Summary      Create or update the authenticated sponsor's profile
// @Tags         sponsors
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpsertSponsorProfileRequest true "request body"
// @Success      200      {object}  domain.SponsorProfile
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sponsor/profile [put]
// @Security     BearerAuth
func (h *SponsorHandler) HandleUpsertSponsorProfile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleSponsor {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a sponsor", user.ID)))
		return
	}

	var req request.UpsertSponsorProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.uSvc.UpsertSponsorProfile(ctx.Request.Context(), domain.SponsorProfile{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Logo:        req.Logo,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpsertSponsorProfile -> h.uSvc.UpsertSponsorProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
