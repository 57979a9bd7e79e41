package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/dashboard"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/session"
)

// SessionResponse pairs a session with its rendered view.
type SessionResponse struct {
	Session session.Session `json:"session"`
	View    dashboard.View  `json:"view"`
}

type createSessionBody struct {
	DatasetID string `json:"dataset_id"`
}

type updateSessionBody struct {
	DatasetID *string         `json:"dataset_id"` // nil keeps the current dataset
	State     dashboard.State `json:"state"`
}

// render draws the view for sess. An unknown dataset renders the no-dataset state.
func (s *Server) render(sess session.Session) dashboard.View {
	var ix *relindex.Index
	if sess.DatasetID != "" {
		if ds, err := s.cache.Get(sess.DatasetID); err == nil {
			ix = ds.Index
		}
	}
	return dashboard.Render(ix, sess.State)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var body createSessionBody
	// an empty body is fine: the session starts without a dataset
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if body.DatasetID != "" {
		if _, err := s.cache.Get(body.DatasetID); err != nil {
			s.writeError(c, err)
			return
		}
	}
	sess := s.sessions.Create(body.DatasetID)
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	c.JSON(http.StatusCreated, SessionResponse{Session: sess, View: s.render(sess)})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("sid"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess, View: s.render(sess)})
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	var body updateSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if body.DatasetID != nil && *body.DatasetID != "" {
		if _, err := s.cache.Get(*body.DatasetID); err != nil {
			s.writeError(c, err)
			return
		}
	}
	sess, err := s.sessions.Update(c.Param("sid"), func(sess *session.Session) error {
		if body.DatasetID != nil {
			sess.DatasetID = *body.DatasetID
		}
		sess.State = body.State
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: sess, View: s.render(sess)})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Param("sid")); err != nil {
		s.writeError(c, err)
		return
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	c.Status(http.StatusNoContent)
}
