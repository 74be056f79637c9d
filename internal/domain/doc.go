// Package domain contains the core entities of the review system,
// independent of storage, transport, and presentation concerns.
package domain
