package client

import (
	"encoding/json"
	"net/http"
)

// Request describes one call to the API. Path is relative to the base URL and
// may carry a query string. A non-nil Body is sent as JSON.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header
}

// Response is a fully read 2xx answer.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 || v == nil {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}
