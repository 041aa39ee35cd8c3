// Package domain contains the core business entities for strata.
// It has no dependencies on infrastructure or adapters.
package domain
