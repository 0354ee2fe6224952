package store

import (
	"strings"

	"uk.co.dudmesh.usermanager/internal/model"
)

// sortable maps the field names accepted in ?sortBy= to columns.
var sortable = map[string]string{
	"name":      "name",
	"email":     "email",
	"age":       "age",
	"createdAt": "created_at",
	"id":        "id",
	"_id":       "id",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildListQuery turns the listing parameters into a select with '?' placeholders.
// An unknown sort field falls back to natural (insertion) order and id is always the
// final tiebreak so repeated identical calls return identical orderings.
func BuildListQuery(params *model.ListUsersParams) (string, []interface{}) {
	sb := strings.Builder{}
	args := []interface{}{}

	sb.WriteString("select * from users")

	if params != nil && params.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(params.Search)) + "%"
		sb.WriteString(` where lower(name) like ? escape '\' or lower(email) like ? escape '\'`)
		args = append(args, pattern, pattern)
	}

	sb.WriteString(" order by ")
	column, ok := "", false
	if params != nil {
		column, ok = sortable[params.SortBy]
	}
	if !ok {
		sb.WriteString("created_at asc, id asc")
		return sb.String(), args
	}

	direction := " asc"
	if model.ParseSortOrder(string(params.Order)) == model.SortDescending {
		direction = " desc"
	}
	sb.WriteString(column)
	sb.WriteString(direction)
	if column != "id" {
		sb.WriteString(", id")
		sb.WriteString(direction)
	}

	return sb.String(), args
}
