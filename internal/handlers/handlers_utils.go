package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shortlinks/internal/domain/models"
)

const (
	msgInvalidURL       = "Invalid URL"
	msgInvalidValidity  = "Validity must be an integer between 1 and 1440 minutes"
	msgInvalidShortcode = "Shortcode must be 3-12 alphanumeric characters"
	msgInvalidBody      = "Invalid request body"
	msgTaken            = "Shortcode already exists"
	msgNotFound         = "Not found"
	msgExpired          = "Expired"
	msgExhausted        = "Could not allocate a shortcode"
	msgInternal         = "Internal server error"
	msgMethodNotAllowed = "Method not allowed"
	msgRateLimited      = "Rate limit exceeded"
)

// maxBodyBytes bounds POST /shorturls bodies.
const maxBodyBytes = 1 << 20

type shortenBody models.ShortenRequest

func (b shortenBody) createRequest() models.CreateRequest {
	req := models.CreateRequest{
		URL:       b.URL,
		Shortcode: b.Shortcode,
	}
	if b.Validity != nil {
		v := float64(*b.Validity)
		req.Validity = &v
	}
	return req
}

// decodeShortenRequest reads the JSON body. An empty body decodes to an empty request.
func decodeShortenRequest(req *http.Request) (shortenBody, error) {
	var body shortenBody
	if req.Body == nil {
		return body, nil
	}
	err := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes)).Decode(&body)
	if errors.Is(err, io.EOF) {
		return shortenBody{}, nil
	}
	return body, err
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidURL):
		return http.StatusBadRequest, msgInvalidURL
	case errors.Is(err, models.ErrInvalidValidity):
		return http.StatusBadRequest, msgInvalidValidity
	case errors.Is(err, models.ErrInvalidShortcode):
		return http.StatusBadRequest, msgInvalidShortcode
	case errors.Is(err, models.ErrShortcodeTaken):
		return http.StatusConflict, msgTaken
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, models.ErrExpired):
		return http.StatusNotFound, msgExpired
	case errors.Is(err, models.ErrGenerationExhausted):
		return http.StatusServiceUnavailable, msgExhausted
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeJSON(res http.ResponseWriter, status int, v interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_ = json.NewEncoder(res).Encode(v)
}

func writeError(res http.ResponseWriter, status int, msg string) {
	writeJSON(res, status, models.ErrorResponse{Error: msg})
}

type (
	responseData struct {
		status int
		size   int
	}

	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

// Write records the number of bytes written for the request log.
func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

// WriteHeader records the status code for the request log.
func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	if r.responseData.status == 0 {
		r.responseData.status = statusCode
	}
}
