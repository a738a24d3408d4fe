package errors

import "net/http"

var (
	ErrDataLoadFailed = New(
		"DATA_LOAD_FAILED",
		"Restaurant dataset could not be loaded",
		http.StatusServiceUnavailable,
	)

	ErrInvalidViewport = New(
		"INVALID_VIEWPORT",
		"Invalid viewport: bounds are degenerate or out of range",
		http.StatusBadRequest,
	)

	ErrUnknownProgram = New(
		"UNKNOWN_PROGRAM",
		"Unknown dining program identifier",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
