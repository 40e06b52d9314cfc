// Package sqlite provides the SQLite backed ledger store used for local,
// single-file books.
package sqlite

// Schema defines the SQL statements to create database tables.
const Schema = `
CREATE TABLE IF NOT EXISTS businesses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'General'   -- 'General' or 'Dairy'
);

CREATE TABLE IF NOT EXISTS parties (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    business_id INTEGER NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL DEFAULT 'Customer',     -- 'Customer' or 'Supplier'
    address TEXT NOT NULL DEFAULT '',
    balance INTEGER NOT NULL DEFAULT 0         -- written only by ledger transactions
);

CREATE INDEX IF NOT EXISTS idx_parties_business
    ON parties(business_id);

CREATE TABLE IF NOT EXISTS ledger_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    party_id INTEGER NOT NULL REFERENCES parties(id) ON DELETE CASCADE,
    type TEXT NOT NULL CHECK (type IN ('GOT', 'GAVE')),
    amount INTEGER NOT NULL CHECK (amount > 0),
    running_balance INTEGER NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_entries_party_time
    ON ledger_entries(party_id, created_at DESC);

CREATE TABLE IF NOT EXISTS cash_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    business_id INTEGER NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
    amount INTEGER NOT NULL CHECK (amount > 0),
    type TEXT NOT NULL CHECK (type IN ('IN', 'OUT')),
    category TEXT NOT NULL DEFAULT 'General',
    note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cash_entries_business_time
    ON cash_entries(business_id, created_at DESC);

CREATE TABLE IF NOT EXISTS preferences (
    pref_key TEXT PRIMARY KEY,
    pref_value TEXT NOT NULL
);
`
