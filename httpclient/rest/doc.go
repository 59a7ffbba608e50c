// Package rest adds typed JSON helpers on top of httpclient.
//
//	client, err := rest.New(httpclient.Config{BaseURL: "https://api.example.com"})
//
//	user, err := rest.Get[User](ctx, client, "/users/123")
//	created, err := rest.Post[User](ctx, client, "/users", CreateUserRequest{Name: "Alice"})
//
// Decoding starts from the Response envelope's Data, after the response
// interceptors ran. Select pulls single values out of it with gjson paths:
//
//	resp, _ := client.HTTP().Get(ctx, "/users")
//	first := rest.Select(resp, "items.0.name").String()
package rest
