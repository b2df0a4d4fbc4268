// Package models defines the core domain models for iDine.
//
// # Catalog
//
//   - MenuSection: a named group of dishes
//   - MenuItem: a single dish with price, dietary codes and ingredients
//
// Catalog values are decoded once per language and treated as read-only.
//
// # Orders
//
//   - OrderRecord: a finalized snapshot of a cart
//
// The live cart itself is not a model; it lives in the order package, which
// owns every mutation and keeps the identifier-keyed invariants.
//
// # Accounts
//
//   - User: a registered diner
//
// Relationships use ID strings, not pointers.
package models
