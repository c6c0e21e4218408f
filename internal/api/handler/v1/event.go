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

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event, organizerID uint) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	GetEvents(ctx context.Context) ([]domain.Event, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetEvents godoc
// @Summary      List events
// @Description  Lists recent and upcoming events with their sponsorships
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.GetEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.GetEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Description  Creates a new event. Only users with the "organizer" role can create events.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest true "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleOrganizer {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	start, end, err := req.ParseDates()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   start,
		EndDate:     end,
	}, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}
