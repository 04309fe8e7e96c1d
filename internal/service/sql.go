package service

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

// RenderSQL собирает скрипт вставки назначений в активный период.
// Повторный запуск скрипта не дублирует уже существующие назначения.
func RenderSQL(assignments []domain.Assignment, dialect domain.Dialect, quoting domain.Quoting) (string, error) {
	quote, err := literalQuoter(dialect, quoting)
	if err != nil {
		return "", err
	}

	lines := []string{
		"-- Generated SQL INSERT statements",
		"-- Total assignments: " + strconv.Itoa(len(assignments)),
		"",
	}

	if len(assignments) == 0 {
		lines = append(lines, "-- Nothing to import")
		return strings.Join(lines, "\n"), nil
	}

	switch dialect {
	case domain.DialectMSSQL:
		lines = appendMSSQL(lines, assignments, quote)
	case domain.DialectPostgres:
		lines = appendPostgres(lines, assignments, quote)
	case domain.DialectSQLite:
		lines = appendSQLite(lines, assignments, quote)
	}

	return strings.Join(lines, "\n"), nil
}

func appendMSSQL(lines []string, assignments []domain.Assignment, quote func(string) string) []string {
	lines = append(lines,
		"DECLARE @PeriodID INT = (SELECT TOP 1 RatingPeriodID FROM tblRatingPeriod WHERE IsActive = 1);",
		"",
		"INSERT INTO tblRatingAssignment (RatingPeriodID, RaterUserID, RaterEmail, RateeUserID, RateeEmail, IsCompleted)",
		"SELECT",
		"    @PeriodID,",
		"    LEFT(RaterEmail, CHARINDEX('@', RaterEmail) - 1),",
		"    RaterEmail,",
		"    LEFT(RateeEmail, CHARINDEX('@', RateeEmail) - 1),",
		"    RateeEmail,",
		"    0",
		"FROM (VALUES",
	)
	lines = appendTuples(lines, "    ", assignments, quote)
	return append(lines,
		") AS Assignments(RaterEmail, RateeEmail)",
		"WHERE NOT EXISTS (",
		"    SELECT 1 FROM tblRatingAssignment",
		"    WHERE RatingPeriodID = @PeriodID",
		"    AND RaterEmail = Assignments.RaterEmail",
		"    AND RateeEmail = Assignments.RateeEmail",
		");",
		"",
		"PRINT 'Assignments imported: ' + CAST(@@ROWCOUNT AS VARCHAR);",
	)
}

func appendPostgres(lines []string, assignments []domain.Assignment, quote func(string) string) []string {
	lines = append(lines,
		"DO $import$",
		"DECLARE",
		"    period_id INT := (SELECT rating_period_id FROM rating_period WHERE is_active ORDER BY rating_period_id DESC LIMIT 1);",
		"    imported INT;",
		"BEGIN",
		"    IF period_id IS NULL THEN",
		"        RAISE EXCEPTION 'No active rating period found';",
		"    END IF;",
		"",
		"    INSERT INTO rating_assignment (rating_period_id, rater_user_id, rater_email, ratee_user_id, ratee_email, is_completed)",
		"    SELECT",
		"        period_id,",
		"        split_part(a.rater_email, '@', 1),",
		"        a.rater_email,",
		"        split_part(a.ratee_email, '@', 1),",
		"        a.ratee_email,",
		"        FALSE",
		"    FROM (VALUES",
	)
	lines = appendTuples(lines, "        ", assignments, quote)
	return append(lines,
		"    ) AS a(rater_email, ratee_email)",
		"    WHERE NOT EXISTS (",
		"        SELECT 1 FROM rating_assignment r",
		"        WHERE r.rating_period_id = period_id",
		"        AND r.rater_email = a.rater_email",
		"        AND r.ratee_email = a.ratee_email",
		"    );",
		"",
		"    GET DIAGNOSTICS imported = ROW_COUNT;",
		"    RAISE NOTICE 'Assignments imported: %', imported;",
		"END",
		"$import$;",
	)
}

func appendSQLite(lines []string, assignments []domain.Assignment, quote func(string) string) []string {
	lines = append(lines,
		"WITH",
		"    period AS (",
		"        SELECT rating_period_id FROM rating_period WHERE is_active = 1 ORDER BY rating_period_id DESC LIMIT 1",
		"    ),",
		"    assignments(rater_email, ratee_email) AS (VALUES",
	)
	lines = appendTuples(lines, "        ", assignments, quote)
	return append(lines,
		"    )",
		"INSERT INTO rating_assignment (rating_period_id, rater_user_id, rater_email, ratee_user_id, ratee_email, is_completed)",
		"SELECT",
		"    period.rating_period_id,",
		"    CASE WHEN instr(a.rater_email, '@') > 0 THEN substr(a.rater_email, 1, instr(a.rater_email, '@') - 1) ELSE a.rater_email END,",
		"    a.rater_email,",
		"    CASE WHEN instr(a.ratee_email, '@') > 0 THEN substr(a.ratee_email, 1, instr(a.ratee_email, '@') - 1) ELSE a.ratee_email END,",
		"    a.ratee_email,",
		"    0",
		"FROM assignments AS a, period",
		"WHERE NOT EXISTS (",
		"    SELECT 1 FROM rating_assignment r",
		"    WHERE r.rating_period_id = period.rating_period_id",
		"    AND r.rater_email = a.rater_email",
		"    AND r.ratee_email = a.ratee_email",
		");",
		"",
		"SELECT 'Assignments imported: ' || changes();",
	)
}

// appendTuples пишет по кортежу на строку, запятая после всех, кроме последнего.
func appendTuples(lines []string, indent string, assignments []domain.Assignment, quote func(string) string) []string {
	for i, a := range assignments {
		comma := ","
		if i == len(assignments)-1 {
			comma = ""
		}
		lines = append(lines, indent+"("+quote(a.RaterEmail)+", "+quote(a.RateeEmail)+")"+comma)
	}
	return lines
}

func literalQuoter(dialect domain.Dialect, quoting domain.Quoting) (func(string) string, error) {
	switch dialect {
	case domain.DialectMSSQL, domain.DialectPostgres, domain.DialectSQLite:
	default:
		return nil, domain.ErrUnknownDialect
	}

	switch quoting {
	case domain.QuotingRaw:
		return func(s string) string { return "'" + s + "'" }, nil
	case domain.QuotingEscape:
		if dialect == domain.DialectPostgres {
			// с обратным слешем pq отдаёт " E'...'" с ведущим пробелом
			return func(s string) string { return strings.TrimSpace(pq.QuoteLiteral(s)) }, nil
		}
		return func(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }, nil
	default:
		return nil, domain.ErrUnknownQuoting
	}
}
