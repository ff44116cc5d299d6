// Package netatmo provides a client for the Netatmo Connect REST API.
//
// The client is split in two types. An UnauthenticatedClient holds the
// application credentials and can only authenticate. Authenticate spends it
// and returns an AuthenticatedClient, which is the only type exposing the
// protected endpoints.
//
// # Usage
//
//	client := netatmo.New(netatmo.ClientCredentials{
//		ClientID:     "your-client-id",
//		ClientSecret: "your-client-secret",
//	}, netatmo.WithLogger(logger))
//
//	ctx := context.Background()
//	authed, err := client.Authenticate(ctx, "user@example.com", "password",
//		[]netatmo.Scope{netatmo.ScopeReadStation})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	data, err := authed.GetStationData(ctx, netatmo.NewStationDataParams())
//
// A token saved from an earlier session can be reused with NewFromToken.
// Tokens are never refreshed by the client.
//
// # Error Handling
//
// Every operation returns an *Error whose Kind is one of:
//
//   - KindFailedToSendRequest: the request never got a response
//   - KindFailedToReadResponse: the body could not be read
//   - KindJSONDeserializationFailed: the body did not match the response type
//   - KindAuthenticationFailed: Authenticate failed, the cause is chained
//   - KindAPICallFailed: the API returned a structured error (Code, Message)
//   - KindUnknownAPICallFailure: the API returned an unexpected status
//
// Use AsAPIError to reach the vendor code:
//
//	if apiErr, ok := netatmo.AsAPIError(err); ok && apiErr.IsUnauthorized() {
//		// log in again
//	}
package netatmo
