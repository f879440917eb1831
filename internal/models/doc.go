// Package models defines the core domain models for the product tracker.
//
// # Models
//
//   - Product: a trackable item with a name and unit price
//   - Record: one logged production/sale entry for a product
//   - Snapshot: the full exported state used for backup and restore
//
// Quantity presets are plain decimals and settings are an open key/value
// mapping, so neither has a dedicated struct.
//
// # Design Principles
//
// 1. **Exact decimals**: prices, quantities and amounts use decimal.Decimal so
// nothing is rounded inside the core. Formatting belongs to the presentation layer.
// 2. **Denormalized history**: a Record carries a snapshot of the product name and
// price, so deleting or renaming a product never rewrites history.
// 3. **Weak references**: Record.ProductID may dangle after the product is deleted.
// 4. **Wire compatibility**: JSON field names match the browser app's backups
// (camelCase), so existing exports import without conversion.
package models
