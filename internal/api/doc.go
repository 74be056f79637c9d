// Package api provides the HTTP handlers for the flashcard service: item
// management and quiz session endpoints, plus the error mapping that keeps
// internal error details out of client responses.
package api
