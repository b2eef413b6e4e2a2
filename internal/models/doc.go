// Package models defines the value types exchanged between the Spotify
// client, the HTTP handlers, and the CLI formatter.
//
// Provider responses are decoded once at the services boundary and flattened
// into these records; optional upstream fields become empty values rather
// than errors.
package models
