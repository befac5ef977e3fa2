// Package services holds the stateful parts of the client: the session
// manager, the entity store mirroring server data, and the avatar uploader.
//
// Every operation reports failure as a returned error after logging it; none
// of them panic or retry, and nothing is applied locally before the server
// confirmed it.
package services
