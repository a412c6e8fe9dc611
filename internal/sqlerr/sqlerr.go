// Package sqlerr translates database driver errors.
//
// It parses cryptic SQLSTATE codes from the Postgres driver and converts
// them into the application's error kinds (e.g. converting a unique
// violation into a duplicate-key error) so no pgx types leak past the
// repository layer.
package sqlerr
