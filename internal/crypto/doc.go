// Package crypto provides the webhook signing primitives for the Daily Event
// Partner API. Inbound webhook deliveries carry a signature header of the form
//
//	X-DailyEvent-Signature: t=<unix seconds>,v1=<hex HMAC-SHA256>
//
// where the MAC is computed with the endpoint's shared secret over the
// string "<t>.<raw body>".
//
// # Security Model
//
// Verification provides:
//
//   - Authenticity: only holders of the endpoint secret can produce a valid MAC.
//   - Integrity: any change to the body or timestamp invalidates the MAC.
//   - Replay protection: deliveries whose signed timestamp falls outside the
//     tolerance window (default five minutes, in either direction) are rejected.
//
// # Critical Security Notes
//
// MACs are compared with [hmac.Equal], which runs in constant time for equal
// length inputs. Never compare signatures with == or bytes.Equal.
//
// The payload MUST be the raw request body exactly as received. Re-encoding
// parsed JSON changes whitespace and key order and breaks verification.
//
// Verification fails closed: a missing secret, malformed header, stale
// timestamp or MAC mismatch all yield an invalid [Result].
package crypto
