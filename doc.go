// Package fintrack is the core of a personal finance tracker. It records
// expenses, savings deposits and peer-to-peer loans against a fixed set of
// money sources, and derives balances, category breakdowns, per-person
// netting and a date-based forecast from them.
//
// The core functionalities include:
//   - Ledger: an append-at-head, most-recent-first list of immutable
//     transactions (expense, savings, money given, money received).
//   - Balance Engine: the pure rule that applies or reverses a transaction
//     onto a per-source Registry, and the aggregations built on top of it.
//   - Forecast Engine: a pure projection of the total balance at a future
//     date, from scheduled one-off deposits and a monthly recurring deposit.
//   - Book: the mutable application state, validating every mutation before
//     touching the ledger and the registry.
//   - Import/Export: a versioned JSON backup and a CSV export of the ledger.
//
// The package does no I/O on its own. Persistence lives in the store
// package, and the fin command-line tool drives everything through cmd.
package fintrack
