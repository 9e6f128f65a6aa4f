// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.Post("/api/session", middleware.WithLogging(handler))

Logs request start (method, path, remote) at debug level and completion
(status, bytes, duration_ms) at info level.

# CORS Middleware

Enable cross-origin requests for the game page:

	r.Use(middleware.CORS(cfg.AllowedOrigins))

Allows methods HEAD, GET, POST with the Content-Type header. An empty
origin list allows any origin. Preflight requests are answered with 204.

# Security Headers

	r.Use(middleware.SecurityHeaders)

Sets nosniff, frame denial, referrer policy and resource policy headers.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "invalid uid")

Errors are written as {"ok": false, "error": "..."}.

Parse JSON request bodies:

	var req models.SubmitSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid uid")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
