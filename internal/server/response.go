package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamtasks/internal/models"
)

// envelope is the uniform JSON body of every API response.
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

const internalErrorMessage = "an unexpected error occurred"

// respondError maps err onto a status code: validation problems become 400,
// missing entities 404 and anything else a logged 500 with a generic message.
func (s *Server) respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, envelope{Success: false, Message: ve.Message, Errors: ve.Errors})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, envelope{Success: false, Message: err.Error()})
	default:
		s.logger.Error("request failed",
			slog.String("request_id", requestIDFrom(c)),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, envelope{Success: false, Message: internalErrorMessage})
	}
}

// respondBindError reports a malformed or invalid request body.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "validation failed", Errors: bindingMessages(err)})
}

// respondSuccess wraps a payload in the success envelope.
func respondSuccess(c *gin.Context, status int, payload any, message string) {
	c.JSON(status, envelope{Success: true, Data: payload, Message: message})
}
