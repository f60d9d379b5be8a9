// Package clientip resolves the caller's IP address for rate limiting and
// request logs. Only the socket peer is used unless the server runs behind a
// trusted proxy, in which case forwarding headers take precedence.
package clientip
