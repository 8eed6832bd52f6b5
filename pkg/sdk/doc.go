// Package sdk is the client library for the Helping Hands Foundation API.
//
// It wraps the REST endpoints exposed by hhfapi with typed methods and
// carries the session lifecycle machinery used by clients: persisted
// credentials, an optimistic role cache, fail-closed role resolution,
// and the access gate that turns a resolved role into a page decision.
package sdk
