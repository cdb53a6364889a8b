package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/daap14/crewdesk/internal/api/response"
)

const maxBodyBytes = 1 << 20

// errInvalidID marks an {id} segment that matched the route but does not fit
// an int64. No record can have such an id.
var errInvalidID = errors.New("id out of range")

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// decodeBody reads a JSON body into dst, writing the error response itself
// and returning false when the body cannot be decoded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Err(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body is too large", requestID)
			return false
		}
		response.Err(w, http.StatusInternalServerError, "MALFORMED_BODY", "Request body must be valid JSON", requestID)
		return false
	}
	return true
}
