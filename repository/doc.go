// Package repository provides a generic repository built on Bun whose
// statements run against a caller-supplied connection or transaction.
package repository
