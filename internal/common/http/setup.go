package http

import (
	"net/http"

	"github.com/AlibekovAA/credential-auth/internal/common/constants"
	"github.com/AlibekovAA/credential-auth/internal/common/httpmetrics"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
)

func BuildBaseHandler(appName string, log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New(appName)
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(traceID(recovery(maxRequestSize(metrics.Wrap(handler)))))
}
