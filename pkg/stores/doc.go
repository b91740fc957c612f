// Package stores persists build receipts: one record per generated
// config source emission, kept in a local SQLite database so a workspace
// can answer what it generated, when, and with which digest.
package stores
