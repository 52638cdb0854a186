package request

type SelectCinemaRequest struct {
	CinemaID int `json:"cinema_id" validate:"required,gt=0"`
}

type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type SelectShowRequest struct {
	ShowID int `json:"show_id" validate:"required,gt=0"`
}

// SeatRequest carries one pointer event on a seat. Labels are whatever the
// layout produced; the board checks that the seat exists.
type SeatRequest struct {
	Seat string `json:"seat" validate:"required,max=64"`
}

type OperationRequest struct {
	Operation string `json:"operation" validate:"required,oneof=BLOCK UNBLOCK"`
}
