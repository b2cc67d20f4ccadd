// Package splitpot provides the core types and the balance resolution engine
// for tracking shared expenses within a group. It is designed to be
// local-first and auditable: every balance is recomputed on demand from the
// full list of recorded transactions, so there is no hidden state to drift
// out of sync.
//
// The core functionalities include:
//   - Ledger Management: Recording group accounts (personal participants and
//     virtual clearing pools) together with their purchases and transfers in
//     an immutable, chronological record.
//   - Balance Resolution: A stateless engine that splits purchase line items
//     among their consumers, distributes the undifferentiated remainder over
//     debitor shares, credits payers, and redistributes clearing account
//     balances through their weighted share tables in dependency order.
//   - Balance History: Lazy, restartable per-account sequences of running
//     balances, one point per billing day.
//   - Data Persistence: Encoding and decoding of accounts and transactions
//     to and from a human-readable, version-controllable JSONL file.
//
// This package serves as the foundational logic for the `spt` command-line
// tool; it performs no I/O, networking, or caching of its own.
package splitpot
