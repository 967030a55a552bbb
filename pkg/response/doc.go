// Package response composes the bytes written back to the client from a
// mock's response spec: literal bodies, files parsed from an on-disk
// response document, and dynamic body functions.
package response
