package domain

import "strings"

// UserID возвращает часть email до первого "@".
// Если "@" нет, возвращается строка целиком.
func UserID(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// RaterUserID идентификатор оценивающего.
func (a Assignment) RaterUserID() string {
	return UserID(a.RaterEmail)
}

// RateeUserID идентификатор оцениваемого.
func (a Assignment) RateeUserID() string {
	return UserID(a.RateeEmail)
}

// ToRecord собирает JSON-запись с указанным периодом.
func (a Assignment) ToRecord(periodID int) Record {
	return Record{
		RaterEmail:  a.RaterEmail,
		RaterUserID: a.RaterUserID(),
		RateeEmail:  a.RateeEmail,
		RateeUserID: a.RateeUserID(),
		PeriodID:    periodID,
	}
}

// ParseDialect разбирает имя диалекта.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectMSSQL, DialectPostgres, DialectSQLite:
		return d, nil
	case "", "tsql", "sqlserver":
		return DialectMSSQL, nil
	case "pg", "postgresql":
		return DialectPostgres, nil
	default:
		return "", ErrUnknownDialect
	}
}

// ParseQuoting разбирает режим экранирования.
func ParseQuoting(s string) (Quoting, error) {
	switch q := Quoting(strings.ToLower(strings.TrimSpace(s))); q {
	case "":
		return QuotingEscape, nil
	case QuotingEscape, QuotingRaw:
		return q, nil
	default:
		return "", ErrUnknownQuoting
	}
}

// ParseFormat разбирает формат выгрузки.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSQL, FormatJSON:
		return f, nil
	default:
		return "", ErrUnknownFormat
	}
}
