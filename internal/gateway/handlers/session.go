package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"depo-system/internal/scan"
)

// SessionHandler exposes the lightweight single-terminal scanning
// sessions.
type SessionHandler struct {
	sessions *scan.SessionStore
}

func NewSessionHandler(sessions *scan.SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Create(c *gin.Context) {
	storeID, username := identity(c)
	session := scan.NewSession(storeID, username)

	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create session: "+err.Error())
		return
	}
	success(c, session)
}

func (h *SessionHandler) Get(c *gin.Context) {
	session, ok := h.load(c)
	if !ok {
		return
	}
	success(c, session)
}

type sessionScanRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
}

func (h *SessionHandler) Scan(c *gin.Context) {
	var req sessionScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	session, ok := h.load(c)
	if !ok {
		return
	}

	duplicate, err := session.Add(req.QRCode)
	if err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}
	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save session: "+err.Error())
		return
	}

	if duplicate {
		successNotice(c, "Code already scanned in this session", session)
		return
	}
	success(c, session)
}

func (h *SessionHandler) Remove(c *gin.Context) {
	var req sessionScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	session, ok := h.load(c)
	if !ok {
		return
	}

	if err := session.Remove(req.QRCode); err != nil {
		if errors.Is(err, scan.ErrEntryNotFound) {
			fail(c, http.StatusNotFound, "Code not in session: "+req.QRCode)
			return
		}
		fail(c, http.StatusConflict, err.Error())
		return
	}
	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save session: "+err.Error())
		return
	}
	success(c, session)
}

func (h *SessionHandler) Complete(c *gin.Context) {
	session, ok := h.load(c)
	if !ok {
		return
	}

	if err := session.Complete(); err != nil {
		fail(c, http.StatusConflict, err.Error())
		return
	}
	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save session: "+err.Error())
		return
	}
	success(c, session)
}

// load fetches the session from the path id and enforces the tenant
// boundary; it writes the error response itself when it fails.
func (h *SessionHandler) load(c *gin.Context) (*scan.Session, bool) {
	session, err := h.sessions.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, scan.ErrSessionNotFound) {
			fail(c, http.StatusNotFound, "Session not found")
			return nil, false
		}
		fail(c, http.StatusInternalServerError, "Failed to load session: "+err.Error())
		return nil, false
	}

	storeID, _ := identity(c)
	if session.StoreID != storeID {
		fail(c, http.StatusForbidden, "Session belongs to another store")
		return nil, false
	}
	return session, true
}
