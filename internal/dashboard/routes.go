package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/motorpool/internal/dispatch"
	"github.com/zulandar/motorpool/internal/models"
	"github.com/zulandar/motorpool/internal/store"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, st *store.Store) {
	router.GET("/", handleRoster(st))
	router.GET("/api/dispatches", handleDispatches(st))
	router.GET("/api/count", handleCount(st))
}

func today() string {
	return time.Now().Format(models.DateLayout)
}

// handleRoster renders the active roster as plain text, the same view the
// bot posts in chat.
func handleRoster(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := st.Active(today())
		if err != nil {
			c.String(http.StatusInternalServerError, "roster unavailable: %v", err)
			return
		}
		c.String(http.StatusOK, dispatch.FormatList(recs))
	}
}

func handleDispatches(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := st.Active(today())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

func handleCount(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := st.CountActive(today())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
