// Package driving provides interfaces exposed to external actors (primary/inbound ports).
// CLI commands, watchers and any future HTTP surface are thin adapters
// over these interfaces and carry no additional logic.
package driving
