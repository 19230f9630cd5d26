package store

const createTableSQL = `
CREATE TABLE IF NOT EXISTS reports (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id         TEXT NOT NULL DEFAULT '',
    hostname       TEXT NOT NULL,
    machine_label  TEXT NOT NULL DEFAULT '',
    eligible       INTEGER NOT NULL DEFAULT 0,
    collected_at   TEXT NOT NULL,
    stored_at      TEXT NOT NULL,
    report_json    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_hostname ON reports(hostname);
CREATE INDEX IF NOT EXISTS idx_reports_run_id ON reports(run_id);
CREATE INDEX IF NOT EXISTS idx_reports_collected_at ON reports(collected_at);
CREATE INDEX IF NOT EXISTS idx_reports_eligible ON reports(eligible);
`
