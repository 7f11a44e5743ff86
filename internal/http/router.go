package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter mounts the API. allowedOrigins is the CORS allowlist; empty
// allows any origin since every route is a read-only GET.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), countRequests(h.metrics))

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", HeaderRequestID},
		ExposeHeaders: []string{HeaderRequestID},
		MaxAge:        10 * time.Minute,
	}
	if len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET(PathHealth, h.Health)
	r.GET(PathMetrics, gin.WrapH(h.metrics.Handler()))

	api := r.Group(APIPrefix)
	{
		api.GET(PathSuggestedFees, h.SuggestedFees)
		api.GET(PathQuote, h.Quote)
		api.GET(PathTokens, h.Tokens)
		api.GET(PathBalances, h.Balances)
		api.GET(PathConfig, h.Config)
	}

	return r
}
