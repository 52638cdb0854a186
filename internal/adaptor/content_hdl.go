package adaptor

import (
	"net/http"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/pkg/utils"
)

// listRequest reads ?q=&page=&per_page= for the content lists.
func listRequest(r *http.Request) request.ListRequest {
	query := r.URL.Query()
	return request.ListRequest{
		Q: query.Get("q"),
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 0),
		},
	}
}
