// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package projection

import (
	"context"
	"database/sql"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/bitmark-inc/archerd/fault"
)

const (
	migrationTable = "schema_migrations"
	migrateUp      = "-- +migrate Up"
	migrateDown    = "-- +migrate Down"
)

// apply each embedded migration at most once
func applyMigrations(ctx context.Context, db *sql.DB, migrations fs.FS) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`)
	if nil != err {
		return fault.Persistencef("migration table: %s", err)
	}

	names, err := fs.Glob(migrations, "*.sql")
	if nil != err {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		var found int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM `+migrationTable+` WHERE name = ?`, name).Scan(&found)
		if nil == err {
			continue
		} else if sql.ErrNoRows != err {
			return fault.Persistencef("migration: %s  check: %s", name, err)
		}

		content, err := fs.ReadFile(migrations, name)
		if nil != err {
			return err
		}

		tx, err := db.BeginTx(ctx, nil)
		if nil != err {
			return fault.Persistencef("migration: %s  begin: %s", name, err)
		}
		_, err = tx.ExecContext(ctx, upSection(string(content)))
		if nil != err {
			tx.Rollback()
			return fault.Persistencef("migration: %s  error: %s", name, err)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`, name, time.Now().UTC().Unix())
		if nil != err {
			tx.Rollback()
			return fault.Persistencef("migration: %s  record: %s", name, err)
		}
		err = tx.Commit()
		if nil != err {
			return fault.Persistencef("migration: %s  commit: %s", name, err)
		}
	}
	return nil
}

// the SQL between the up and down markers
func upSection(content string) string {
	up := strings.Index(content, migrateUp)
	if up < 0 {
		return content
	}
	content = content[up+len(migrateUp):]
	if down := strings.Index(content, migrateDown); down >= 0 {
		content = content[:down]
	}
	return content
}
