package service

import (
	"regexp"
	"strings"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

// ('rater', 'ratee') с поддержкой '' внутри литерала и префикса E у postgres
var tupleRe = regexp.MustCompile(`\(\s*([Ee]?)'((?:[^']|'')*)'\s*,\s*([Ee]?)'((?:[^']|'')*)'\s*\)`)

// ParseSQLTuples достаёт пары (rater, ratee) из литеральной таблицы VALUES
// ранее сгенерированного скрипта. Порядок сохраняется, при Dedup остаётся первое вхождение.
func ParseSQLTuples(script string, opts domain.ParseOptions) []domain.Assignment {
	matches := tupleRe.FindAllStringSubmatch(script, -1)

	res := make([]domain.Assignment, 0, len(matches))
	seen := make(map[domain.Assignment]struct{}, len(matches))

	for _, m := range matches {
		a := domain.Assignment{
			RaterEmail: strings.TrimSpace(unquoteLiteral(m[2], m[1] != "")),
			RateeEmail: strings.TrimSpace(unquoteLiteral(m[4], m[3] != "")),
		}
		if opts.Lowercase {
			a.RaterEmail = strings.ToLower(a.RaterEmail)
			a.RateeEmail = strings.ToLower(a.RateeEmail)
		}
		if opts.Dedup {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
		}
		res = append(res, a)
	}

	return res
}

func unquoteLiteral(body string, escaped bool) string {
	s := strings.ReplaceAll(body, "''", "'")
	if escaped {
		s = strings.ReplaceAll(s, `\\`, `\`)
	}
	return s
}
