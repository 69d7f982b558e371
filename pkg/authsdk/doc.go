/*
Package authsdk is the client side of the cwsite authentication service: the
wire types shared with the server, the APIError type used for every error
response, and a small Client.

Players log in through the browser (GET /v1/oauth2/login), which ends in a
SessionResponse carrying an opaque bearer token. That token is what Client
needs for authenticated calls:

	client := authsdk.NewClient("https://auth.example.com", token)

	me, err := client.Me(ctx)
	if err != nil {
		var apiErr *authsdk.APIError
		if errors.As(err, &apiErr) && apiErr.Code == authsdk.ErrorCodeInvalidToken {
			// token revoked, log in again
		}
	}

	steve, err := client.PlayerByName(ctx, "steve")

	// Revokes every credential of the player, this one included.
	err = client.Logout(ctx)

Tokens do not expire; Logout or a new login are the only ways a token stops
working.
*/
package authsdk
