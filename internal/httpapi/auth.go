package httpapi

import (
	"net/http"
	"time"

	"grocery-be/internal/auth"
	"grocery-be/internal/logger"
	"grocery-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

// login exchanges a provider token for a session token. The session is
// returned in the body and doubled as an httpOnly cookie.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	ctx := c.Request.Context()

	identity, err := h.verifier.Verify(ctx, req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	u, err := h.users.GetOrCreate(ctx, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateSessionToken(h.cfg.JWTSecret, u.ID, sessionTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.FromCtx(ctx).Info("user logged in", zap.String("user_id", u.ID.String()))

	c.SetCookie("access_token", token, int(sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         u,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
