package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/session"
)

// Error codes returned in the "code" field of error responses.
const (
	codeBadRequest         = "bad_request"
	codeSessionNotFound    = "session_not_found"
	codeIllegalTransition  = "illegal_transition"
	codeGenerationInFlight = "generation_in_flight"
	codeOutOfOrderAnswer   = "out_of_order_answer"
	codeInvalidOption      = "invalid_option"
	codeSessionClosed      = "session_closed"
)

type answerRequest struct {
	QuestionID *int `json:"questionId" binding:"required"`
	Option     *int `json:"option" binding:"required"`
}

func (s *Server) createSession(c *gin.Context) {
	ctrl := s.cfg.NewSession(session.OnTransition(s.metrics.observeTransition))
	id := s.sessions.add(ctrl)
	s.metrics.sessions.Set(float64(s.sessions.len()))
	c.JSON(http.StatusCreated, newStateView(id, ctrl.State(), s.cfg.Labels))
}

func (s *Server) getSession(c *gin.Context) {
	id, ctrl, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newStateView(id, ctrl.State(), s.cfg.Labels))
}

func (s *Server) deleteSession(c *gin.Context) {
	if !s.sessions.remove(c.Param("id")) {
		abortWithError(c, http.StatusNotFound, codeSessionNotFound, "session not found")
		return
	}
	s.metrics.sessions.Set(float64(s.sessions.len()))
	c.Status(http.StatusNoContent)
}

func (s *Server) start(c *gin.Context) {
	s.dispatch(c, http.StatusAccepted, func(ctrl *session.Controller) error {
		return ctrl.Start()
	})
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	s.dispatch(c, http.StatusOK, func(ctrl *session.Controller) error {
		return ctrl.Dispatch(quiz.AnswerSubmitted{QuestionID: *req.QuestionID, Option: *req.Option})
	})
}

func (s *Server) openReview(c *gin.Context) {
	s.dispatch(c, http.StatusOK, (*session.Controller).OpenReview)
}

func (s *Server) closeReview(c *gin.Context) {
	s.dispatch(c, http.StatusOK, (*session.Controller).CloseReview)
}

func (s *Server) reset(c *gin.Context) {
	s.dispatch(c, http.StatusOK, (*session.Controller).Reset)
}

// dispatch runs op against the addressed session and answers with the
// resulting state, or with the mapped error.
func (s *Server) dispatch(c *gin.Context, status int, op func(*session.Controller) error) {
	id, ctrl, ok := s.lookup(c)
	if !ok {
		return
	}
	if err := op(ctrl); err != nil {
		status, code := classify(err)
		abortWithError(c, status, code, err.Error())
		return
	}
	c.JSON(status, newStateView(id, ctrl.State(), s.cfg.Labels))
}

func (s *Server) lookup(c *gin.Context) (string, *session.Controller, bool) {
	id := c.Param("id")
	ctrl, ok := s.sessions.get(id)
	if !ok {
		abortWithError(c, http.StatusNotFound, codeSessionNotFound, "session not found")
		return "", nil, false
	}
	return id, ctrl, true
}

// classify maps controller errors onto HTTP statuses.
func classify(err error) (int, string) {
	var illegal *quiz.IllegalTransitionError
	switch {
	case errors.Is(err, quiz.ErrInvalidOption):
		return http.StatusBadRequest, codeInvalidOption
	case errors.Is(err, quiz.ErrGenerationInFlight):
		return http.StatusConflict, codeGenerationInFlight
	case errors.Is(err, quiz.ErrOutOfOrderAnswer):
		return http.StatusConflict, codeOutOfOrderAnswer
	case errors.As(err, &illegal):
		return http.StatusConflict, codeIllegalTransition
	case errors.Is(err, session.ErrClosed):
		return http.StatusGone, codeSessionClosed
	}
	return http.StatusInternalServerError, "internal"
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
