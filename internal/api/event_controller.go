package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/service"
)

// EventController exposes the event lifecycle over HTTP.
type EventController struct {
	events service.EventService
}

// NewEventController creates an event controller.
func NewEventController(events service.EventService) *EventController {
	return &EventController{events: events}
}

// statusForResult maps a failed service result to an HTTP status.
// Validation failures are 400; known conflicts are 409; not-found is 404.
func statusForResult(errs []string) int {
	for _, msg := range errs {
		switch msg {
		case service.MsgEventNotFound:
			return http.StatusNotFound
		case service.MsgEventFull, service.MsgRegistrationClosed,
			service.MsgDuplicateEvent, service.MsgDuplicateActivity:
			return http.StatusConflict
		case service.MsgStorageFailure:
			return http.StatusInternalServerError
		}
	}
	return http.StatusBadRequest
}

// List returns all events ordered by date.
func (ec *EventController) List(c *gin.Context) {
	Success(c, ec.events.List(c.Request.Context()))
}

// Upcoming returns future events, optionally filtered by ?audience=.
func (ec *EventController) Upcoming(c *gin.Context) {
	audience := model.Audience(c.Query("audience"))
	if audience != "" && !audience.Valid() {
		Error(c, http.StatusBadRequest, "invalid audience filter")
		return
	}
	Success(c, ec.events.Upcoming(c.Request.Context(), audience))
}

// Open returns upcoming events still accepting registrations.
func (ec *EventController) Open(c *gin.Context) {
	audience := model.Audience(c.Query("audience"))
	if audience != "" && !audience.Valid() {
		Error(c, http.StatusBadRequest, "invalid audience filter")
		return
	}
	Success(c, ec.events.Open(c.Request.Context(), audience))
}

// Get returns one event by ID.
func (ec *EventController) Get(c *gin.Context) {
	event := ec.events.Get(c.Request.Context(), c.Param("id"))
	if event == nil {
		Error(c, http.StatusNotFound, service.MsgEventNotFound)
		return
	}
	Success(c, event)
}

// Create adds a new event (admin only).
func (ec *EventController) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res := ec.events.Create(c.Request.Context(), &req)
	if !res.Success {
		Error(c, statusForResult(res.Errors), "failed to create event", res.Errors...)
		return
	}
	Success(c, res)
}

// Update edits only the provided fields of an event (admin only).
func (ec *EventController) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res := ec.events.Update(c.Request.Context(), c.Param("id"), &req)
	if !res.Success {
		Error(c, statusForResult(res.Errors), "failed to update event", res.Errors...)
		return
	}
	Success(c, res)
}

// Delete removes an event (admin only).
func (ec *EventController) Delete(c *gin.Context) {
	res := ec.events.Delete(c.Request.Context(), c.Param("id"))
	if !res.Success {
		Error(c, statusForResult(res.Errors), "failed to delete event", res.Errors...)
		return
	}
	Success(c, res)
}

// Register adds one participant to an event.
func (ec *EventController) Register(c *gin.Context) {
	res := ec.events.Register(c.Request.Context(), c.Param("id"))
	if !res.Success {
		Error(c, statusForResult(res.Errors), "registration failed", res.Errors...)
		return
	}
	Success(c, res)
}

// Unregister removes one participant from an event.
func (ec *EventController) Unregister(c *gin.Context) {
	res := ec.events.Unregister(c.Request.Context(), c.Param("id"))
	if !res.Success {
		Error(c, statusForResult(res.Errors), "unregistration failed", res.Errors...)
		return
	}
	Success(c, res)
}

// Sweep marks past-dated events as ended (admin only).
func (ec *EventController) Sweep(c *gin.Context) {
	count := ec.events.SweepExpired(c.Request.Context())
	Success(c, gin.H{"ended": count})
}
