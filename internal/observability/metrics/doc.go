// Package metrics holds the Prometheus collectors of the service.
//
// Collectors are registered with the default registry through promauto and exposed on
// /metrics. HTTP collectors are fed by the request middleware, operation collectors by the
// usecase layer and pool gauges by the database stats loop in cmd/api.
package metrics
