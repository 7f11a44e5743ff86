package http

import (
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/bridge-fees/internal/metrics"
	"github.com/quantumauth-io/bridge-fees/internal/quote"
	"github.com/quantumauth-io/bridge-fees/internal/whitelist"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, quote.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, whitelist.ErrNoWhitelistedToken):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func outcomeFor(err error) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		return metrics.OutcomeInvalid
	case http.StatusNotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeUpstream
	}
}

// writeError answers with the error message for client errors. Server errors
// are logged and answered with a generic message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(ContextKeyReqID),
			"error", err,
		)
		c.AbortWithStatusJSON(status, gin.H{JSONKeyError: HTTPErrorInternalText})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{JSONKeyError: err.Error()})
}

func writeBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{JSONKeyError: msg})
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseChainID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
