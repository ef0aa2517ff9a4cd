// Package sossdk is a Go client for the SafePulse HTTP API and the home of
// its request and response types, which the server encodes directly.
//
//	c := sossdk.NewClient("http://localhost:8080")
//	tok, err := c.Login(ctx, "9876543210", "1234")
//	...
//	res, err := c.SOS(ctx, tok.AccessToken, sossdk.SOSRequest{
//		Contacts: []string{"9123456789", "9000000001"},
//		Lat:      sossdk.Float(12.9716),
//		Lng:      sossdk.Float(77.5946),
//	})
package sossdk
