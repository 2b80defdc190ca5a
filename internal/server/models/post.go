package models

// Post is a document of the posts collection. Date is free-form text.
// Author, when set, is the _id of an existing Account.
type Post struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Text        string  `json:"text"`
	Description string  `json:"description"`
	Author      *string `json:"author,omitempty"`
}
