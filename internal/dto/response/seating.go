package response

import "picturetime-dashboard/internal/seating"

// WorkspaceResponse is the whole block/unblock screen for one staff session.
type WorkspaceResponse struct {
	Picker seating.PickerView `json:"picker"`
	Board  *seating.BoardView `json:"board,omitempty"`
}

type SubmitResponse struct {
	Updated   int               `json:"updated"`
	Seats     []string          `json:"seats"`
	Operation seating.Operation `json:"operation"`
	Message   string            `json:"message"`
	// StatusStale is set when the post-submit status refresh failed.
	StatusStale bool              `json:"status_stale,omitempty"`
	Board       seating.BoardView `json:"board"`
}
