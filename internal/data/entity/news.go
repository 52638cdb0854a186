package entity

type News struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Source   string `json:"source"`
	Date     string `json:"date"`
	Amount   string `json:"amount,omitempty"`
	Status   string `json:"status,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}
