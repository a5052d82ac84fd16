// Package http provides HTTP plumbing shared by the application: outbound
// round trippers (debug dumps, User-Agent injection) used for endpoint
// discovery, and inbound middleware used by the local callback listener.
package http
