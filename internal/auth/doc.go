// Package auth signs and verifies the tokens that bind a browser to a
// server-side form instance.
//
// A token is an HS256 JWT whose subject is the form instance ID and whose
// "form" claim names the form kind (sign-in, sign-up). Tokens carry no
// account information.
package auth
