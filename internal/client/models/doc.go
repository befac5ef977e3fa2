// Package models defines the client-side mirror of server-owned entities
// (session, user profile, cards) shared by the services, overlay and route
// packages.
package models
