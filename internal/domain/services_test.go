package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserID(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@co.com", "alice"},
		{"a.b@x@y", "a.b"},
		{"no-at-sign", "no-at-sign"},
		{"@co.com", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UserID(tt.email), tt.email)
	}
}

func TestAssignment_ToRecord(t *testing.T) {
	a := Assignment{RaterEmail: "dave@co.com", RateeEmail: "carol@co.com"}

	assert.Equal(t, Record{
		RaterEmail:  "dave@co.com",
		RaterUserID: "dave",
		RateeEmail:  "carol@co.com",
		RateeUserID: "carol",
		PeriodID:    1,
	}, a.ToRecord(1))
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"":           DialectMSSQL,
		"mssql":      DialectMSSQL,
		"SQLServer":  DialectMSSQL,
		"postgres":   DialectPostgres,
		" pg ":       DialectPostgres,
		"postgresql": DialectPostgres,
		"sqlite":     DialectSQLite,
	} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDialect("oracle")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestParseQuotingAndFormat(t *testing.T) {
	q, err := ParseQuoting("")
	require.NoError(t, err)
	assert.Equal(t, QuotingEscape, q)

	q, err = ParseQuoting("RAW")
	require.NoError(t, err)
	assert.Equal(t, QuotingRaw, q)

	_, err = ParseQuoting("html")
	assert.ErrorIs(t, err, ErrUnknownQuoting)

	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
