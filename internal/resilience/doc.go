// Package resilience groups the fault tolerance helpers of the service.
//
//   - circuitbreaker wraps the transaction runner so a failing database is not hammered
//     by every request, and guards JWKS fetches from the identity provider.
//   - retry retries transient failures with exponential backoff and jitter, used for the
//     startup database ping and for key set downloads.
//
// Domain outcomes (NotFound, Conflict, validation) are never retried and never count as
// breaker failures.
package resilience
