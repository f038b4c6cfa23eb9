// Package database owns the process-wide connection pool: configuration,
// driver and dialect selection, scoped transactions (WithTx), health checks,
// pool statistics, driver error classification and query logging, built on
// top of Bun.
package database
