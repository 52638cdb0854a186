package request

type CashFlowReportRequest struct {
	CinemaID int    `json:"cinemaId" validate:"required,gt=0"`
	From     string `json:"from" validate:"required,datetime=2006-01-02"`
	To       string `json:"to" validate:"required,datetime=2006-01-02"`
}
