package models

// AuthorRecord describes one commit author or co-author as reported by the
// metadata collaborator. Every field is optional; absent fields are empty
// strings.
type AuthorRecord struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Login string `json:"login,omitempty"`
	ID    string `json:"id,omitempty"`
}

// IsEmpty reports whether the record carries no usable signal.
func (a AuthorRecord) IsEmpty() bool {
	return a.Name == "" && a.Email == "" && a.Login == "" && a.ID == ""
}
