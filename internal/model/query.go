package model

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder only honours the literal "desc", everything else sorts ascending.
func ParseSortOrder(order string) SortOrder {
	if order == string(SortDescending) {
		return SortDescending
	}
	return SortAscending
}

type ListUsersParams struct {
	Search string    `query:"search"`
	SortBy string    `query:"sortBy"`
	Order  SortOrder `query:"order"`
}
