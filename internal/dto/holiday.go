package dto

// CreateHolidayRequest declares a holiday for one department.
type CreateHolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required,datetime=2006-01-02"`
	Department  string `json:"department"   binding:"required"`
	Reason      string `json:"reason"       binding:"required,max=255"`
}

// UpdateHolidayRequest edits a holiday; nil fields untouched.
type UpdateHolidayRequest struct {
	HolidayDate *string `json:"holiday_date" binding:"omitempty,datetime=2006-01-02"`
	Reason      *string `json:"reason"       binding:"omitempty,max=255"`
}

// HolidayListRequest filters the calendar.
type HolidayListRequest struct {
	Department string `form:"department" binding:"required"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// HolidayResponse is the calendar entry view.
type HolidayResponse struct {
	ID          string `json:"id"`
	HolidayDate string `json:"holiday_date"`
	Department  string `json:"department"`
	Reason      string `json:"reason"`
}
