// Package casafolio provides the accounting engine behind a personal
// portfolio tracker for Moroccan equity accounts (Casablanca Stock
// Exchange). It is designed to be local-first and auditable: the whole
// portfolio state is a pure function of the transaction history, the
// recurring fee records, and a snapshot of current prices.
//
// The core functionalities include:
//   - Transaction normalization: parsing brokerage CSV exports in three
//     historical schema variants into a canonical, chronologically ordered
//     transaction list, tolerating locale-ambiguous numbers and mixed
//     French/English operation labels.
//   - Fee and tax inference: reconstructing brokerage, settlement and
//     SBVC fees (VAT included) and capital-gains tax when the source data
//     omits them, using the standard Casablanca tariff as a reference.
//   - Holding accounting: a weighted-average-cost ledger per ticker that
//     tracks quantity, fee-inclusive cost basis, gross average price and
//     buy/sell VWAP, and emits realized P&L on every sale.
//   - Performance history: a day-by-day replay of the transaction stream
//     producing an equity-versus-invested-capital time series.
//   - Data persistence: encoding and decoding transactions and fee
//     records to and from human-readable JSONL files.
//
// This package serves as the foundational logic for the `cpt` command-line
// tool; dashboards and narrative services consume its Summary read model.
package casafolio
