// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores aggregated benchmark results in a SQL database.
//
// Each stored ResultSet is an upload. An upload keeps the order of the
// algorithms and of their sources, so a loaded ResultSet writes out
// exactly like the one that was stored.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/benchagg/benchagg"
)

// DB is a high-level interface to a result database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertUpload    *sql.Stmt
	insertAlgorithm *sql.Stmt
	insertSource    *sql.Stmt
	insertValue     *sql.Stmt
	insertStat      *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Platform VARCHAR(255),
	Threshold INT
);
CREATE TABLE IF NOT EXISTS Algorithms (
	UploadID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Name VARCHAR(255),
	Reduced BOOLEAN,
	PRIMARY KEY (UploadID, Seq),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Sources (
	UploadID BIGINT UNSIGNED,
	AlgSeq BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Label VARCHAR(1024),
	PRIMARY KEY (UploadID, AlgSeq, Seq),
	FOREIGN KEY (UploadID, AlgSeq) REFERENCES Algorithms(UploadID, Seq) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS SourceValues (
	UploadID BIGINT UNSIGNED,
	AlgSeq BIGINT UNSIGNED,
	SourceSeq BIGINT UNSIGNED,
	Col INT,
	Value BIGINT,
	PRIMARY KEY (UploadID, AlgSeq, SourceSeq, Col),
	FOREIGN KEY (UploadID, AlgSeq, SourceSeq) REFERENCES Sources(UploadID, AlgSeq, Seq) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Stats (
	UploadID BIGINT UNSIGNED,
	AlgSeq BIGINT UNSIGNED,
	Col INT,
	Median DOUBLE,
	Min BIGINT,
	Max BIGINT,
	PRIMARY KEY (UploadID, AlgSeq, Col),
	FOREIGN KEY (UploadID, AlgSeq) REFERENCES Algorithms(UploadID, Seq) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS UploadsPlatform ON Uploads(Platform);
{{else}}
CREATE INDEX UploadsPlatform ON Uploads(Platform);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			if driverName != "sqlite3" && strings.HasPrefix(strings.TrimSpace(q), "CREATE INDEX") && isDuplicateKey(err) {
				// MySQL has no CREATE INDEX IF NOT EXISTS.
				continue
			}
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// isDuplicateKey reports whether err is MySQL's "Duplicate key name"
// error.
func isDuplicateKey(err error) bool {
	const erDupKeyName = 1061
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == erDupKeyName
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	for _, s := range []struct {
		stmt  **sql.Stmt
		query string
	}{
		{&db.insertUpload, "INSERT INTO Uploads(Platform, Threshold) VALUES (?, ?)"},
		{&db.insertAlgorithm, "INSERT INTO Algorithms(UploadID, Seq, Name, Reduced) VALUES (?, ?, ?, ?)"},
		{&db.insertSource, "INSERT INTO Sources(UploadID, AlgSeq, Seq, Label) VALUES (?, ?, ?, ?)"},
		{&db.insertValue, "INSERT INTO SourceValues(UploadID, AlgSeq, SourceSeq, Col, Value) VALUES (?, ?, ?, ?, ?)"},
		{&db.insertStat, "INSERT INTO Stats(UploadID, AlgSeq, Col, Median, Min, Max) VALUES (?, ?, ?, ?, ?, ?)"},
	} {
		stmt, err := db.sql.Prepare(s.query)
		if err != nil {
			return err
		}
		*s.stmt = stmt
	}
	return nil
}

// An Upload is one stored ResultSet.
type Upload struct {
	// ID is the upload ID assigned by the database.
	ID string

	// Platform and Threshold describe how the ResultSet was
	// produced.
	Platform  string
	Threshold int

	// Algorithms is the number of algorithms in the ResultSet.
	Algorithms int
}

// InsertResultSet stores rs as a new upload in a single transaction.
func (db *DB) InsertResultSet(ctx context.Context, platform string, threshold int, rs *benchagg.ResultSet) (u *Upload, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertUpload).ExecContext(ctx, platform, threshold)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	insertAlgorithm := tx.StmtContext(ctx, db.insertAlgorithm)
	insertSource := tx.StmtContext(ctx, db.insertSource)
	insertValue := tx.StmtContext(ctx, db.insertValue)
	insertStat := tx.StmtContext(ctx, db.insertStat)
	for seq, name := range rs.Algorithms {
		rec := rs.Records[name]
		if _, err := insertAlgorithm.ExecContext(ctx, id, seq, name, rec.Reduced()); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for srcSeq, src := range rec.Sources() {
			if _, err := insertSource.ExecContext(ctx, id, seq, srcSeq, src.Label); err != nil {
				return nil, fmt.Errorf("%s: source %s: %w", name, src.Label, err)
			}
			for col, v := range src.Values {
				if _, err := insertValue.ExecContext(ctx, id, seq, srcSeq, col, v); err != nil {
					return nil, fmt.Errorf("%s: source %s: %w", name, src.Label, err)
				}
			}
		}
		for col := range rec.Medians {
			if _, err := insertStat.ExecContext(ctx, id, seq, col, rec.Medians[col], rec.Mins[col], rec.Maxes[col]); err != nil {
				return nil, fmt.Errorf("%s: stats: %w", name, err)
			}
		}
	}
	return &Upload{
		ID:         strconv.FormatInt(id, 10),
		Platform:   platform,
		Threshold:  threshold,
		Algorithms: rs.Len(),
	}, nil
}

// GetUpload returns the description of an upload.
func (db *DB) GetUpload(ctx context.Context, uploadID string) (*Upload, error) {
	id, err := strconv.ParseInt(uploadID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid upload ID %q", uploadID)
	}
	u := &Upload{ID: uploadID}
	err = db.sql.QueryRowContext(ctx, "SELECT Platform, Threshold, (SELECT COUNT(*) FROM Algorithms WHERE UploadID = ?) FROM Uploads WHERE UploadID = ?", id, id).Scan(&u.Platform, &u.Threshold, &u.Algorithms)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("upload %s not found", uploadID)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// LoadResultSet reads back the ResultSet stored by an upload.
func (db *DB) LoadResultSet(ctx context.Context, uploadID string) (*benchagg.ResultSet, error) {
	if _, err := db.GetUpload(ctx, uploadID); err != nil {
		return nil, err
	}
	id, _ := strconv.ParseInt(uploadID, 10, 64)

	// recs is indexed by algorithm Seq.
	var recs []*benchagg.Record
	err := db.query(ctx, "SELECT Name, Reduced FROM Algorithms WHERE UploadID = ? ORDER BY Seq", id, func(rows *sql.Rows) error {
		var name string
		var reduced bool
		if err := rows.Scan(&name, &reduced); err != nil {
			return err
		}
		rec := benchagg.NewRecord(name)
		if reduced {
			rec.Medians, rec.Maxes, rec.Mins = []float64{}, []int64{}, []int64{}
		}
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	rec := func(seq int) (*benchagg.Record, error) {
		if seq < 0 || seq >= len(recs) {
			return nil, fmt.Errorf("upload %s: dangling algorithm %d", uploadID, seq)
		}
		return recs[seq], nil
	}

	// labels is indexed by algorithm Seq, then source Seq.
	labels := make([][]string, len(recs))
	err = db.query(ctx, "SELECT AlgSeq, Label FROM Sources WHERE UploadID = ? ORDER BY AlgSeq, Seq", id, func(rows *sql.Rows) error {
		var seq int
		var label string
		if err := rows.Scan(&seq, &label); err != nil {
			return err
		}
		r, err := rec(seq)
		if err != nil {
			return err
		}
		r.Set(label, []int64{})
		labels[seq] = append(labels[seq], label)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = db.query(ctx, "SELECT AlgSeq, SourceSeq, Value FROM SourceValues WHERE UploadID = ? ORDER BY AlgSeq, SourceSeq, Col", id, func(rows *sql.Rows) error {
		var seq, srcSeq int
		var v int64
		if err := rows.Scan(&seq, &srcSeq, &v); err != nil {
			return err
		}
		r, err := rec(seq)
		if err != nil {
			return err
		}
		if srcSeq < 0 || srcSeq >= len(labels[seq]) {
			return fmt.Errorf("upload %s: %s: dangling source %d", uploadID, r.Name, srcSeq)
		}
		label := labels[seq][srcSeq]
		values, _ := r.Source(label)
		r.Set(label, append(values, v))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = db.query(ctx, "SELECT AlgSeq, Median, Min, Max FROM Stats WHERE UploadID = ? ORDER BY AlgSeq, Col", id, func(rows *sql.Rows) error {
		var seq int
		var median float64
		var min, max int64
		if err := rows.Scan(&seq, &median, &min, &max); err != nil {
			return err
		}
		r, err := rec(seq)
		if err != nil {
			return err
		}
		r.Medians = append(r.Medians, median)
		r.Mins = append(r.Mins, min)
		r.Maxes = append(r.Maxes, max)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs := benchagg.New()
	for _, r := range recs {
		rs.Insert(r)
	}
	return rs, nil
}

// query runs a query with a single argument and calls fn for each row.
func (db *DB) query(ctx context.Context, q string, arg interface{}, fn func(*sql.Rows) error) error {
	rows, err := db.sql.QueryContext(ctx, q, arg)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountUploads returns the number of uploads in the database.
func (db *DB) CountUploads() (int, error) {
	var uploads int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&uploads)
	return uploads, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertUpload, db.insertAlgorithm, db.insertSource, db.insertValue, db.insertStat} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
