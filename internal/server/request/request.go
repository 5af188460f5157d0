package request

import (
	"encoding/json"
	"net/http"
)

// ReadJSON rejects bodies with unknown fields.
func ReadJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
