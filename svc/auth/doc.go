// Package auth signs users in through third-party identity providers and
// authorizes their requests.
//
// The flow is: a ProviderAdapter exchanges an authorization code for an
// Identity, the RoleResolver derives a Role from the configured AllowList and
// upserts the user record keyed by email, and the SessionManager mints a
// signed, stateless session token that the Guard validates on every request.
//
// Roles are embedded in the token at mint time. A role change becomes
// visible once the user signs in again or the token expires, so the
// staleness window equals the session TTL.
package auth
