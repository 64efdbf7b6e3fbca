package dto

// CreateAttendanceRequest records a day. Admins may set UserID to record
// for someone else.
type CreateAttendanceRequest struct {
	UserID   int64  `json:"userId" binding:"omitempty,min=1" example:"3"`
	Date     string `json:"date" binding:"required,date" example:"2025-03-14"`
	Status   string `json:"status" binding:"required,oneof=present absent half_day leave holiday" example:"present"`
	CheckIn  string `json:"checkIn" binding:"omitempty,clock" example:"09:05"`
	CheckOut string `json:"checkOut" binding:"omitempty,clock" example:"17:45"`
	Notes    string `json:"notes" binding:"omitempty,max=1000"`
	Location string `json:"location" binding:"omitempty,oneof=office remote client_site" example:"office"`
}

// UpdateAttendanceRequest updates the provided fields
type UpdateAttendanceRequest struct {
	Status   *string `json:"status" binding:"omitempty,oneof=present absent half_day leave holiday"`
	CheckIn  *string `json:"checkIn" binding:"omitempty,clock"`
	CheckOut *string `json:"checkOut" binding:"omitempty,clock"`
	Notes    *string `json:"notes" binding:"omitempty,max=1000"`
	Location *string `json:"location" binding:"omitempty,oneof=office remote client_site"`
}

// AttendanceSummaryResponse totals a user's attendance over a window
type AttendanceSummaryResponse struct {
	UserID         int64   `json:"userId" example:"3"`
	Days           int     `json:"days" example:"30"`
	From           string  `json:"from" example:"2025-02-12"`
	To             string  `json:"to" example:"2025-03-14"`
	TotalDays      int     `json:"totalDays" example:"20"`
	PresentDays    int     `json:"presentDays" example:"17"`
	HalfDays       int     `json:"halfDays" example:"1"`
	AbsentDays     int     `json:"absentDays" example:"1"`
	LeaveDays      int     `json:"leaveDays" example:"1"`
	HolidayDays    int     `json:"holidayDays" example:"0"`
	AttendanceRate float64 `json:"attendanceRate" example:"90"`
	AverageHours   float64 `json:"averageHours" example:"8.2"`
}

// ChatRequest is a free text attendance question
type ChatRequest struct {
	Question string `json:"question" binding:"required,min=1,max=500" example:"Who is absent today?"`
}

// ChatResponse is the chatbot reply
type ChatResponse struct {
	Intent string      `json:"intent" example:"absent_today"`
	Answer string      `json:"answer"`
	Data   interface{} `json:"data,omitempty"`
}
