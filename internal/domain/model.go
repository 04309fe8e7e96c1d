// Package domain содержит модели импорта назначений 360-оценки.
package domain

// Row одна строка исходного CSV после чтения.
type Row struct {
	Line       int // номер строки в файле, заголовок = 1
	RaterEmail string
	RateeEmail string
}

// Assignment пара (кто оценивает, кого оценивают).
type Assignment struct {
	RaterEmail string
	RateeEmail string
}

// Record представление назначения в JSON-выгрузке.
type Record struct {
	RaterEmail  string `json:"raterEmail"`
	RaterUserID string `json:"raterUserId"`
	RateeEmail  string `json:"rateeEmail"`
	RateeUserID string `json:"rateeUserId"`
	PeriodID    int    `json:"periodId"`
}

// Dialect диалект генерируемого SQL.
type Dialect string

const (
	// DialectMSSQL T-SQL, формат исходного скрипта импорта.
	DialectMSSQL Dialect = "mssql"
	// DialectPostgres PostgreSQL.
	DialectPostgres Dialect = "postgres"
	// DialectSQLite SQLite.
	DialectSQLite Dialect = "sqlite"
)

// Quoting режим вставки email в литералы SQL.
type Quoting string

const (
	// QuotingEscape экранирует кавычки внутри литералов.
	QuotingEscape Quoting = "escape"
	// QuotingRaw подставляет значения как есть, как делал старый скрипт.
	QuotingRaw Quoting = "raw"
)

// Format формат выгрузки.
type Format string

const (
	FormatSQL  Format = "sql"
	FormatJSON Format = "json"
)
