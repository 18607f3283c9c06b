// Package http implements the REST API of the platform.
//
// It wires chi routes to the service layer and carries the transport
// concerns: bearer authentication, trace ids, access logging, request
// metrics, language negotiation, gzip, timeouts and per-address rate limits
// on the contact form. Errors reach clients as JSON with a stable code and a
// message in the request language.
package http
