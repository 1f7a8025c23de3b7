package postgresindex

import "github.com/BurntSushi/migration"

// migrations is the ordered, append-only list of schema changes this
// package knows about. migration.Open applies whichever prefix the
// target database hasn't seen yet, recording progress in its own
// bookkeeping table.
var migrations = []migration.Migrator{
	migration1CreateTables,
}

func migration1CreateTables(tx migration.LimitedTx) error {
	stmts := []string{
		`CREATE TABLE term_postings (
			term text NOT NULL,
			docid bigint NOT NULL,
			positions integer[] NOT NULL DEFAULT '{}',
			weight double precision NOT NULL DEFAULT 1,
			PRIMARY KEY (term, docid)
		)`,
		`CREATE INDEX term_postings_docid_idx ON term_postings (docid)`,
		`CREATE TABLE value_postings (
			slot integer NOT NULL,
			value text NOT NULL,
			docid bigint NOT NULL,
			PRIMARY KEY (slot, value, docid)
		)`,
		`CREATE INDEX value_postings_slot_value_idx ON value_postings (slot, value)`,
		`CREATE TABLE doc_lengths (
			docid bigint PRIMARY KEY,
			length integer NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
