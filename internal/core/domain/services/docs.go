// Package services contains stateless domain services that operate across
// aggregates. RoutePlanner orders a courier's claimed deliveries into a
// short multi-stop route.
package services
