package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubsphere/clubsphere-api/internal/api/handler/v1/response"
	"github.com/clubsphere/clubsphere-api/internal/api/middleware"
	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetSponsorProfile(ctx context.Context, userID uint) (domain.SponsorProfile, error)
	UpsertSponsorProfile(ctx context.Context, profile domain.SponsorProfile) (domain.SponsorProfile, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// getUserFromContext loads the authenticated caller set by the JWT
// middleware.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	userID := ctx.GetUint(middleware.ContextKeyUserID)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized("user not authenticated")
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized("user not found")
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err))
	}

	return user, nil
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path      int  true  "User ID"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}
