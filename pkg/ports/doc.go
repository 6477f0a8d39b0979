/*
Package ports defines the driven ports (interfaces) for guts services.

These interfaces decouple validation and conversion from storage backends,
allowing the CLI and HTTP service to keep records in memory, on disk or in
Redis.

# Key Interfaces

  - DocumentStore: persists records by ID and regularizes them on load.
  - DistributedLocker: serializes concurrent writers of the same document.

RunDocumentStoreContract and RunLockerContract are shared test suites that
every adapter runs.
*/
package ports
