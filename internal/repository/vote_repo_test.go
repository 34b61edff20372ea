package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyInsertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"unique violation is a duplicate device",
			&pgconn.PgError{Code: "23505", ConstraintName: "votes_entry_id_device_hash_key"},
			ErrDuplicateDevice,
		},
		{
			"foreign key violation is a missing entry",
			&pgconn.PgError{Code: "23503", ConstraintName: "votes_entry_id_fkey"},
			ErrEntryNotFound,
		},
		{
			"wrapped driver errors are still classified",
			fmt.Errorf("insert vote: %w", &pgconn.PgError{Code: "23505"}),
			ErrDuplicateDevice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyInsertError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyInsertError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyInsertError_PassThrough(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}},
		{"plain connection error", errors.New("write: broken pipe")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyInsertError(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("classifyInsertError() = %v, want original error back", got)
			}
			if errors.Is(got, ErrDuplicateDevice) || errors.Is(got, ErrEntryNotFound) {
				t.Errorf("classifyInsertError() misclassified %v as a vote rejection", tt.err)
			}
		})
	}
}
