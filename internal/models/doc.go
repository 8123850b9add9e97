// Package models defines the core domain models for the shared-expense ledger.
//
// # Models
//
//   - User: registered account, referenced by expenses and settlements
//   - Group: owns expenses; membership defines who may participate in splits
//   - Expense: a shared cost paid by one member, divided per its SplitType
//   - ExpenseSplit: one participant's share of an expense
//   - Settlement: a direct payment between two members, outside the split
//     mechanism, recorded append-only
//
// An Expense and its ExpenseSplit rows form one logical unit: they are
// created together in a single transaction and deleted together. Nothing
// mutates them in between.
//
// # Design Principles
//
//  1. **Decimal money**: amounts and shares are decimal.Decimal; arithmetic
//     runs at full precision and rounds to two places only when building
//     display strings
//  2. **ID strings instead of pointers**: relationships reference UUIDs to
//     avoid circular references
//  3. **Typed errors**: validation, not-found, access-denied, and consistency
//     failures are distinct types so callers can map them without string
//     matching
package models
