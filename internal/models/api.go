package models

// NavLink is one entry in the top navigation bar.
type NavLink struct {
	Link string
	Name string
	Icon string
}

// DocumentListResponse is the JSON payload of the document listing endpoint.
type DocumentListResponse struct {
	Engine    string      `json:"engine"`
	Datastore string      `json:"datastore"`
	Documents interface{} `json:"documents"`
	Total     int         `json:"total"`
}
