package netatmo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "api call with vendor error",
			err:  &Error{Kind: KindAPICallFailed, Name: "get_measure", Code: 21, Message: "Invalid device_id"},
			want: "netatmo: API call 'get_measure' failed: code 21: Invalid device_id",
		},
		{
			name: "api call with cause",
			err:  &Error{Kind: KindAPICallFailed, Name: "get_measure", Err: newError(KindFailedToSendRequest, errors.New("timeout"))},
			want: "netatmo: API call 'get_measure' failed: netatmo: failed to send request: timeout",
		},
		{
			name: "unknown status",
			err:  &Error{Kind: KindUnknownAPICallFailure, Name: "get_token", StatusCode: 418},
			want: "netatmo: API call 'get_token' failed with unexpected status 418",
		},
		{
			name: "authentication",
			err:  newError(KindAuthenticationFailed, ErrEmptyScopes),
			want: "netatmo: failed to authenticate: netatmo: at least one scope is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "FailedToSendRequest", KindFailedToSendRequest.String())
	assert.Equal(t, "FailedToReadResponse", KindFailedToReadResponse.String())
	assert.Equal(t, "JsonDeserializationFailed", KindJSONDeserializationFailed.String())
	assert.Equal(t, "AuthenticationFailed", KindAuthenticationFailed.String())
	assert.Equal(t, "ApiCallFailed", KindAPICallFailed.String())
	assert.Equal(t, "UnknownApiCallFailure", KindUnknownAPICallFailure.String())
}

func TestError_IsUnauthorized(t *testing.T) {
	assert.True(t, (&Error{Kind: KindAPICallFailed, Code: 2}).IsUnauthorized())
	assert.True(t, (&Error{Kind: KindAPICallFailed, Code: 3}).IsUnauthorized())
	assert.False(t, (&Error{Kind: KindAPICallFailed, Code: 21}).IsUnauthorized())
	assert.False(t, (&Error{Kind: KindUnknownAPICallFailure, StatusCode: 401}).IsUnauthorized())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("loading stations: %w", &Error{Kind: KindAPICallFailed, Name: "get_station_data"})
	assert.Equal(t, KindAPICallFailed, KindOf(wrapped))
}

func TestAttribute(t *testing.T) {
	classified := &Error{Kind: KindAPICallFailed, Name: "get_measure", Code: 21, Message: "bad"}
	assert.Same(t, classified, attribute("get_measure", classified))

	other := attribute("get_homes_data", classified)
	var e *Error
	assert.ErrorAs(t, other, &e)
	assert.Equal(t, "get_homes_data", e.Name)
	assert.Same(t, classified, e.Err)

	wrapped := attribute("get_home_status", ErrEmptyHomeID)
	assert.Equal(t, KindAPICallFailed, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, ErrEmptyHomeID)
	_, ok := AsAPIError(wrapped)
	assert.False(t, ok)
}
