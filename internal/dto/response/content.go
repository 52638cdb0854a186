package response

import "picturetime-dashboard/internal/data/entity"

type NewsResponse struct {
	entity.News
	Badge Badge `json:"badge"`
}

func NewsToResponse(news *entity.News) NewsResponse {
	return NewsResponse{News: *news, Badge: StatusBadge(news.Status)}
}
