// Package httpapi serves the distribution engine over REST for hosts
// that want a network boundary instead of an in-process call.
//
// Endpoints:
//
//	POST /events                        ingest a raw event, returns the summary
//	GET  /deliveries?userId=&limit=     recent delivery history, newest first
//	GET  /users/{userID}/preferences    stored or synthesized-default preferences
//	PUT  /users/{userID}/preferences    full-replace preference write
//
// Field names and defaulting match the in-process models exactly, so
// existing callers can move between the two surfaces without translation.
package httpapi
