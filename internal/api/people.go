package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/models"
)

// PeopleHandler serves person directory endpoints used by the selection UI.
type PeopleHandler struct {
	dir PersonDirectory
	log *logrus.Logger
}

// NewPeopleHandler creates a PeopleHandler.
func NewPeopleHandler(dir PersonDirectory, log *logrus.Logger) *PeopleHandler {
	return &PeopleHandler{dir: dir, log: log}
}

// listResponse is the paged listing payload.
type listResponse struct {
	People  []models.PersonSummary `json:"people"`
	HasMore bool                   `json:"has_more"`
}

// List handles GET /api/v1/people.
func (h *PeopleHandler) List(c *gin.Context) {
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseInt(c.DefaultQuery("offset", "0"), 0)

	people, hasMore, err := h.dir.ListPeople(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		h.log.WithError(err).Error("listing people")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, listResponse{People: people, HasMore: hasMore})
}

// Get handles GET /api/v1/people/:id.
func (h *PeopleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrMissingID.Error())

		return
	}

	person, err := h.dir.GetPerson(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPersonNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "person not found")

			return
		}

		h.log.WithError(err).Error("getting person")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, person)
}

// Relatives handles GET /api/v1/people/:id/relatives.
func (h *PeopleHandler) Relatives(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrMissingID.Error())

		return
	}

	rel, err := h.dir.GetRelatives(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPersonNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "person not found")

			return
		}

		h.log.WithError(err).Error("getting relatives")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, rel)
}

// Stats handles GET /api/v1/stats.
func (h *PeopleHandler) Stats(c *gin.Context) {
	stats, err := h.dir.Stats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("getting stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, stats)
}

// parseInt parses a query integer, falling back to def on garbage.
func parseInt(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}

	return v
}
