/*
Package observability exposes Prometheus collectors for validation and codec
activity. The HTTP service and the CLI record into a *Metrics; the service
serves them on /metrics.
*/
package observability
