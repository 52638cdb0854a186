package entity

// Lead is a website inquiry. IDs are the submission timestamp written as
// DD-MM-YYYYHH-MM-SS by the public site.
type Lead struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Status   string `json:"status,omitempty"`
}
