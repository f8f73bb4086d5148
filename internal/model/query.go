package model

const (
	SortTitle   = "title"
	SortYear    = "year"
	SortRuntime = "runtime"
)

// Criteria is a conjunction; an empty field matches every movie.
type Criteria struct {
	Genre  string
	Year   string
	Rating string
}

func (c Criteria) IsEmpty() bool {
	return c.Genre == "" && c.Year == "" && c.Rating == ""
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}
