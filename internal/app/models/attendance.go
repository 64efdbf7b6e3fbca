package models

import "time"

// AttendanceStatus is the daily attendance outcome
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceLeave   AttendanceStatus = "leave"
	AttendanceHoliday AttendanceStatus = "holiday"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave, AttendanceHoliday:
		return true
	}
	return false
}

// CountsAsPresent treats half days as attended
func (s AttendanceStatus) CountsAsPresent() bool {
	return s == AttendancePresent || s == AttendanceHalfDay
}

// AttendanceRecord is one user-day of attendance. Date is YYYY-MM-DD and
// check-in/out are HH:MM so they compare lexically.
type AttendanceRecord struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Date        string           `json:"date" db:"date" example:"2025-03-14"`
	Status      AttendanceStatus `json:"status" db:"status" example:"present"`
	CheckIn     *string          `json:"checkIn,omitempty" db:"check_in" example:"09:05"`
	CheckOut    *string          `json:"checkOut,omitempty" db:"check_out" example:"17:45"`
	HoursWorked *float64         `json:"hoursWorked,omitempty" db:"hours_worked" example:"8.7"`
	Notes       *string          `json:"notes,omitempty" db:"notes"`
	Location    *string          `json:"location,omitempty" db:"location" example:"office"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	UserName string `json:"userName,omitempty"`
}

// AttendanceFilter narrows attendance listings; empty fields are ignored
type AttendanceFilter struct {
	UserID *int64
	From   string
	To     string
	Status *AttendanceStatus
}
