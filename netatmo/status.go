package netatmo

import (
	"encoding/json"
	"net/http"
)

// errorStatuses are the statuses for which the API returns a structured error body.
var errorStatuses = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusUnauthorized:        true,
	http.StatusForbidden:           true,
	http.StatusNotFound:            true,
	http.StatusNotAcceptable:       true,
	http.StatusInternalServerError: true,
}

// apiErrorBody is {"error": {"code": <int>, "message": <string>}}. Both
// fields are pointers so an object missing either one is rejected.
type apiErrorBody struct {
	Error *struct {
		Code    *int    `json:"code"`
		Message *string `json:"message"`
	} `json:"error"`
}

// classify passes resp through when it carries the expected status and
// converts every other status into an *Error attributed to name.
func classify(name string, resp *Response, expected int) (*Response, error) {
	if resp.StatusCode == expected {
		return resp, nil
	}

	unknown := &Error{Kind: KindUnknownAPICallFailure, Name: name, StatusCode: resp.StatusCode}

	if !errorStatuses[resp.StatusCode] {
		resp.Close()
		return nil, unknown
	}

	text, err := resp.Text()
	if err != nil {
		unknown.Err = newError(KindFailedToReadResponse, err)
		return nil, unknown
	}

	var body apiErrorBody
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		unknown.Err = newError(KindJSONDeserializationFailed, err)
		return nil, unknown
	}
	if body.Error == nil || body.Error.Code == nil || body.Error.Message == nil {
		return nil, unknown
	}

	return nil, &Error{
		Kind:    KindAPICallFailed,
		Name:    name,
		Code:    *body.Error.Code,
		Message: *body.Error.Message,
	}
}
