package webserver

import (
	"net/url"
	"strconv"
	"strings"
)

// Search results are capped regardless of filter combination.
const maxSearchResults = 500

// The admin form offers a "no preference" gender option; both paren widths
// appear in the UI.
var genderSentinels = map[string]bool{
	"(指定なし)":  true,
	"（指定なし）": true,
}

// Condition is a single where-clause fragment applied via db.Where.
type Condition struct {
	Expr string
	Args []interface{}
}

// PostFilter holds the optional search inputs for behavior posts. Absent or
// unusable inputs simply contribute no condition; no combination is an error.
type PostFilter struct {
	Age     *int
	Gender  string
	Place   string
	Action  string
	Keyword string
}

// ParsePostFilter reads the five optional query parameters shared by the
// admin list and the public search endpoint. Both "q" and "keyword" name the
// solution keyword; "q" wins when both are present.
func ParsePostFilter(q url.Values) PostFilter {
	var f PostFilter

	if s := strings.TrimSpace(q.Get("age")); s != "" {
		if age, err := strconv.Atoi(s); err == nil {
			f.Age = &age
		}
	}

	if g := strings.TrimSpace(q.Get("gender")); g != "" && !genderSentinels[g] {
		f.Gender = g
	}

	f.Place = strings.TrimSpace(q.Get("place"))
	f.Action = strings.TrimSpace(q.Get("action"))

	f.Keyword = strings.TrimSpace(q.Get("q"))
	if f.Keyword == "" {
		f.Keyword = strings.TrimSpace(q.Get("keyword"))
	}

	return f
}

// Conditions translates the filter into where-clause fragments.
//   - age: exact equality
//   - gender: exact equality
//   - place/action: exact element membership in the stored JSON array,
//     matched as the quoted element so "学校" never matches "小学校"
//   - keyword: case-insensitive substring of solution
func (f PostFilter) Conditions() []Condition {
	var conds []Condition

	if f.Age != nil {
		conds = append(conds, Condition{Expr: "age = ?", Args: []interface{}{*f.Age}})
	}
	if f.Gender != "" {
		conds = append(conds, Condition{Expr: "gender = ?", Args: []interface{}{f.Gender}})
	}
	if f.Place != "" {
		conds = append(conds, Condition{
			Expr: "places LIKE ? ESCAPE '!'",
			Args: []interface{}{`%"` + escapeLike(f.Place) + `"%`},
		})
	}
	if f.Action != "" {
		conds = append(conds, Condition{
			Expr: "actions LIKE ? ESCAPE '!'",
			Args: []interface{}{`%"` + escapeLike(f.Action) + `"%`},
		})
	}
	if f.Keyword != "" {
		conds = append(conds, Condition{
			Expr: "LOWER(solution) LIKE ? ESCAPE '!'",
			Args: []interface{}{"%" + escapeLike(strings.ToLower(f.Keyword)) + "%"},
		})
	}

	return conds
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }
