// Package services contains the core business logic implementing the
// driving port interfaces. Services depend only on driven ports, never
// on concrete adapters - all wiring happens at the CLI entry point.
package services
