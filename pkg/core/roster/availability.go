package roster

import "strings"

// Availability notes are free text written by coordinators, so matching
// here is deliberately heuristic. Two clause kinds are recognised,
// case-insensitively:
//
//   - explicit exclusions: "not to be shifted Wednesday" (or
//     "Wednesdays"); "not to be shifted weekends" blocks both Saturday
//     and Sunday
//   - an "only" clause: "only Mondays and Thursdays" restricts the
//     staff member to days matching a listed token, by substring or
//     3-letter abbreviation
//
// When a note carries both an "only" clause and an explicit exclusion
// for the same day, the exclusion wins. That overlap isn't something
// coordinators write deliberately; the precedence is pinned down by
// tests rather than inferred at call sites.

const exclusionPhrase = "not to be shifted"

var weekendPhrases = []string{"weekend", "week-end", "week end"}

// AllowsDay reports whether the availability note permits scheduling on
// the given day. An empty note permits every day.
func AllowsDay(note string, day Day) bool {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return true
	}
	lowered := strings.ToLower(trimmed)

	if excludesDay(lowered, day) {
		return false
	}

	if clause, ok := onlyClause(lowered); ok {
		return onlyClauseMatches(clause, day)
	}

	return true
}

// excludesDay checks every "not to be shifted ..." clause in the note.
func excludesDay(lowered string, day Day) bool {
	rest := lowered
	for {
		idx := strings.Index(rest, exclusionPhrase)
		if idx < 0 {
			return false
		}
		clause := rest[idx+len(exclusionPhrase):]

		// Bound the clause so it doesn't bleed into a following
		// exclusion or "only" clause.
		if next := strings.Index(clause, exclusionPhrase); next >= 0 {
			clause = clause[:next]
		}
		if next := strings.Index(clause, " only "); next >= 0 {
			clause = clause[:next]
		}

		if clauseNamesDay(clause, day) {
			return true
		}

		rest = rest[idx+len(exclusionPhrase):]
	}
}

// clauseNamesDay reports whether an exclusion clause's text names the
// day, directly or via a weekend-wide phrase.
func clauseNamesDay(clause string, day Day) bool {
	if strings.Contains(clause, strings.ToLower(string(day))) {
		return true
	}
	if IsWeekend(day) {
		for _, phrase := range weekendPhrases {
			if strings.Contains(clause, phrase) {
				return true
			}
		}
	}
	return false
}

// onlyClause extracts the text following an "only" keyword, if present.
// "only" must stand as its own word so names like "Connolly" don't
// trigger it.
func onlyClause(lowered string) (string, bool) {
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '.'
	})
	for i, field := range fields {
		if field == "only" {
			return strings.Join(fields[i+1:], " "), true
		}
	}
	return "", false
}

// onlyClauseMatches reports whether any token in the clause matches the
// day, by substring in either direction or by 3-letter abbreviation.
func onlyClauseMatches(clause string, day Day) bool {
	loweredDay := strings.ToLower(string(day))
	abbrev := loweredDay[:3]

	for _, token := range strings.Fields(clause) {
		token = strings.Trim(token, ",;.")
		if token == "" || token == "and" || token == "or" || token == "on" {
			continue
		}
		if strings.Contains(loweredDay, token) || strings.Contains(token, loweredDay) {
			return true
		}
		if strings.HasPrefix(token, abbrev) {
			return true
		}
	}
	return false
}
