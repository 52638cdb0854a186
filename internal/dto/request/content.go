package request

// ListRequest filters and pages a content list. Q is matched
// case-insensitively against the collection's searchable fields.
type ListRequest struct {
	Q string `json:"q"`
	PaginatedRequest
}

type MoviePosterRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Link string `json:"link" validate:"required,url"`
}

type CreateTheatreRequest struct {
	Image    string               `json:"image" validate:"omitempty,url"`
	Address  string               `json:"address" validate:"required"`
	Location string               `json:"location" validate:"required"`
	MapURL   string               `json:"map_url" validate:"omitempty,url"`
	Movies   []MoviePosterRequest `json:"movies" validate:"dive"`
}

type CreateNewsRequest struct {
	Title    string `json:"title" validate:"required,max=300"`
	Source   string `json:"source" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Amount   string `json:"amount"`
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}
