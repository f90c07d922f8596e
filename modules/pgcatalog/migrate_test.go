package pgcatalog

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("iofs.New: %v", err)
	}
	defer source.Close()

	version, err := source.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if version != 1 {
		t.Fatalf("first migration = %d want 1", version)
	}

	up, _, err := source.ReadUp(version)
	if err != nil {
		t.Fatalf("ReadUp: %v", err)
	}
	defer up.Close()

	body, err := io.ReadAll(up)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(body), "CREATE TABLE") || !strings.Contains(string(body), "translations") {
		t.Fatalf("unexpected up migration:\n%s", body)
	}

	if _, _, err := source.ReadDown(version); err != nil {
		t.Fatalf("ReadDown: %v", err)
	}
}

func TestMigrateInvalidDSN(t *testing.T) {
	if err := Migrate("not-a-dsn", nil); err == nil {
		t.Fatal("expected error for an invalid dsn")
	}
}

type fakeVersioner struct {
	version uint
	dirty   bool
	err     error
}

func (f fakeVersioner) Version() (uint, bool, error) {
	return f.version, f.dirty, f.err
}

func TestReportVersion(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name    string
		m       fakeVersioner
		wantErr error
		wantLog string
	}{
		{name: "clean", m: fakeVersioner{version: 1}, wantLog: "version=1"},
		{name: "no version", m: fakeVersioner{err: migrate.ErrNilVersion}, wantLog: "version=none"},
		{name: "query fails", m: fakeVersioner{err: boom}, wantErr: boom},
		{name: "dirty", m: fakeVersioner{version: 1, dirty: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			err := reportVersion(tc.m, logger)
			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("reportVersion error = %v want %v", err, tc.wantErr)
				}
			case tc.m.dirty:
				if err == nil || !strings.Contains(err.Error(), "dirty") {
					t.Fatalf("reportVersion error = %v want dirty schema error", err)
				}
			default:
				if err != nil {
					t.Fatalf("reportVersion: %v", err)
				}
				if !strings.Contains(buf.String(), tc.wantLog) {
					t.Fatalf("log %q missing %q", buf.String(), tc.wantLog)
				}
			}
		})
	}

	if err := reportVersion(fakeVersioner{version: 2}, nil); err != nil {
		t.Fatalf("reportVersion without logger: %v", err)
	}
}
