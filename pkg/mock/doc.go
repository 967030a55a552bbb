// Package mock defines the matcher algebra and the Mock record: the data
// model a test declares against a server. It holds no concurrency or
// network concerns of its own — those live in pkg/registry and
// pkg/mockserver, which operate on the types built here.
package mock
