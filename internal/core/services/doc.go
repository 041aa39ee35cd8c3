// Package services implements the core pipeline behind the driving
// ports: unit classification, index routing, query fan-out with
// reranking, and collection administration.
package services
