// Package cookie reads and writes HTTP cookies with optional integrity and
// confidentiality protection.
//
// A Manager holds one or more secrets and the default attributes applied to
// every cookie (Path "/", HttpOnly, SameSite=Lax). The first secret signs and
// encrypts; all secrets are tried when reading so keys can be rotated.
//
//	Set / Get / Delete                plain values
//	SetSigned / GetSigned             HMAC-SHA256 signed values
//	SetEncrypted / GetEncrypted       AES-256-GCM sealed values
//	SetJSON / GetJSON                 sealed JSON documents
//
// The session token and the OAuth state cookie are both written through a
// Manager so their attributes stay consistent.
package cookie
