// Package pkguid generates identifiers.
//
// String ids (UUIDv7) name uploaded files and requests. Numeric ids
// (Snowflake) key stored rows where ordering by id must follow insertion.
package pkguid
