package lore

// Pagination is the paging block of a lore response.
type Pagination struct {
	ResultsTotal uint16 `json:"ResultsTotal"`
}

// Result is a single lore entry; only the Text column is requested.
type Result struct {
	Text string `json:"Text"`
}

// Response is the decoded body of a lore search.
type Response struct {
	Pagination Pagination `json:"Pagination"`
	Results    []Result   `json:"Results"`
}

// First returns the first result's text and whether there was one.
func (r *Response) First() (string, bool) {
	if r == nil || len(r.Results) == 0 {
		return "", false
	}
	return r.Results[0].Text, true
}
