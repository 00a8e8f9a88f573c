// Package jwt signs and verifies HMAC-SHA256 JSON Web Tokens.
//
// It is a thin layer over github.com/golang-jwt/jwt/v5 that pins the signing
// method, applies an optional issuer and clock, and folds the library's error
// taxonomy into a few sentinel errors callers can match with errors.Is.
//
// # Usage
//
//	svc, err := jwt.NewFromString(secret, jwt.WithIssuer("bookshelf"))
//	if err != nil {
//		return err
//	}
//
//	type claims struct {
//		jwt.RegisteredClaims
//		Email string `json:"email"`
//	}
//
//	token, err := svc.Generate(claims{Email: "a@example.com"})
//
//	var out claims
//	if err := svc.Parse(token, &out); errors.Is(err, jwt.ErrExpiredToken) {
//		// ask the user to sign in again
//	}
package jwt
