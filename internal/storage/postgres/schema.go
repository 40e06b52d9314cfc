package postgres

// Schema is applied by Migrate. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS businesses (
    id       BIGSERIAL PRIMARY KEY,
    name     TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'General'
);

CREATE TABLE IF NOT EXISTS parties (
    id          BIGSERIAL PRIMARY KEY,
    business_id BIGINT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    phone       TEXT NOT NULL DEFAULT '',
    role        TEXT NOT NULL DEFAULT 'Customer',
    address     TEXT NOT NULL DEFAULT '',
    balance     BIGINT NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_parties_business ON parties(business_id);

CREATE TABLE IF NOT EXISTS ledger_entries (
    id              BIGSERIAL PRIMARY KEY,
    party_id        BIGINT NOT NULL REFERENCES parties(id) ON DELETE CASCADE,
    type            TEXT NOT NULL CHECK (type IN ('GOT', 'GAVE')),
    amount          BIGINT NOT NULL CHECK (amount > 0),
    running_balance BIGINT NOT NULL,
    note            TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ledger_entries_party_time
    ON ledger_entries(party_id, created_at DESC);

CREATE TABLE IF NOT EXISTS cash_entries (
    id          BIGSERIAL PRIMARY KEY,
    business_id BIGINT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
    amount      BIGINT NOT NULL CHECK (amount > 0),
    type        TEXT NOT NULL CHECK (type IN ('IN', 'OUT')),
    category    TEXT NOT NULL DEFAULT 'General',
    note        TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cash_entries_business_time
    ON cash_entries(business_id, created_at DESC);

CREATE TABLE IF NOT EXISTS preferences (
    pref_key   TEXT PRIMARY KEY,
    pref_value TEXT NOT NULL
);
`
