package dto

import (
	"fmt"
	"math"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
)

// NoWorkingHours is rendered when working hours cannot be computed.
const NoWorkingHours = "—"

// DailyRegisterQuery holds the query parameters of the daily register.
type DailyRegisterQuery struct {
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	ClassID   string `form:"classID"`
	SectionID string `form:"sectionID"`
}

// Filter converts the class/section parameters into a roster filter.
func (q DailyRegisterQuery) Filter() domain.RosterFilter {
	var f domain.RosterFilter
	if q.ClassID != "" {
		f.ClassID = &q.ClassID
	}
	if q.SectionID != "" {
		f.SectionID = &q.SectionID
	}
	return f
}

// MonthlyCalendarQuery holds the month of the calendar view.
type MonthlyCalendarQuery struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// RecordPunchRequest is a manual or device punch for one person and date.
type RecordPunchRequest struct {
	PersonID string `json:"personID" binding:"required"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	InTime   string `json:"inTime" binding:"omitempty,clock"`
	OutTime  string `json:"outTime" binding:"omitempty,clock"`
	Source   string `json:"source" binding:"omitempty,oneof=device manual"`
	Status   string `json:"status" binding:"omitempty,oneof=present late absent excused half_day"`
	Remarks  string `json:"remarks"`
}

// ToPunch converts the request into a domain punch. Requests without a source
// are treated as manual entries.
func (r RecordPunchRequest) ToPunch(personType domain.PersonType) (domain.AttendancePunch, error) {
	date, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return domain.AttendancePunch{}, fmt.Errorf("invalid date: %w", err)
	}
	punch := domain.AttendancePunch{
		PersonID:   r.PersonID,
		PersonType: personType,
		Date:       date,
		Source:     domain.SourceManual,
		Remarks:    r.Remarks,
	}
	if r.Source != "" {
		punch.Source = domain.PunchSource(r.Source)
	}
	if r.InTime != "" {
		in, err := domain.ParseClock(r.InTime)
		if err != nil {
			return domain.AttendancePunch{}, err
		}
		punch.InTime = &in
	}
	if r.OutTime != "" {
		out, err := domain.ParseClock(r.OutTime)
		if err != nil {
			return domain.AttendancePunch{}, err
		}
		punch.OutTime = &out
	}
	if r.Status != "" {
		status := domain.AttendanceStatus(r.Status)
		punch.ManualStatus = &status
	}
	return punch, nil
}

// MarkAllRequest applies one status to many people on a date.
type MarkAllRequest struct {
	PersonIDs []string `json:"personIDs" binding:"required,min=1,dive,required"`
	Date      string   `json:"date" binding:"required,datetime=2006-01-02"`
	Status    string   `json:"status" binding:"required,oneof=present late absent excused half_day"`
}

// AttendanceRowResponse is one resolved day of one person.
type AttendanceRowResponse struct {
	PersonID     string  `json:"personID"`
	Name         string  `json:"name"`
	ClassID      string  `json:"classID,omitempty"`
	SectionID    string  `json:"sectionID,omitempty"`
	RollNumber   string  `json:"rollNumber,omitempty"`
	Date         string  `json:"date"`
	Weekday      string  `json:"weekday"`
	Status       string  `json:"status"`
	InTime       *string `json:"inTime,omitempty"`
	OutTime      *string `json:"outTime,omitempty"`
	WorkingHours string  `json:"workingHours"`
	LateMinutes  *int    `json:"lateMinutes,omitempty"`
	Remarks      string  `json:"remarks,omitempty"`
}

// DailyRegisterResponse is the register of one roster for one date.
type DailyRegisterResponse struct {
	PersonType string                   `json:"personType"`
	Date       string                   `json:"date"`
	Rows       []AttendanceRowResponse  `json:"rows"`
	Summary    domain.AttendanceSummary `json:"summary"`
}

// MonthlyCalendarResponse is one person's month.
type MonthlyCalendarResponse struct {
	PersonID   string                   `json:"personID"`
	PersonType string                   `json:"personType"`
	Name       string                   `json:"name"`
	Month      string                   `json:"month"`
	Days       []AttendanceRowResponse  `json:"days"`
	Summary    domain.AttendanceSummary `json:"summary"`
}

// FormatWorkingHours renders a duration as H:MM, or NoWorkingHours when nil.
func FormatWorkingHours(d *time.Duration) string {
	if d == nil {
		return NoWorkingHours
	}
	minutes := int(d.Minutes())
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func clockString(c *domain.ClockTime) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

// ToAttendanceRowResponse converts a resolved row.
func ToAttendanceRowResponse(row domain.AttendanceRow) AttendanceRowResponse {
	resp := AttendanceRowResponse{
		PersonID:     row.Person.PersonID,
		Name:         row.Person.Name,
		ClassID:      row.Person.ClassID,
		SectionID:    row.Person.SectionID,
		RollNumber:   row.Person.RollNumber,
		Date:         row.Date.Format(domain.DateLayout),
		Weekday:      row.Date.Weekday().String(),
		Status:       string(row.Status),
		InTime:       clockString(row.InTime),
		OutTime:      clockString(row.OutTime),
		WorkingHours: FormatWorkingHours(row.WorkingHours),
		Remarks:      row.Remarks,
	}
	if row.LateBy != nil {
		late := int(math.Round(row.LateBy.Minutes()))
		resp.LateMinutes = &late
	}
	return resp
}

// ToDailyRegisterResponse converts a domain register.
func ToDailyRegisterResponse(reg *domain.DailyRegister) DailyRegisterResponse {
	resp := DailyRegisterResponse{
		PersonType: string(reg.PersonType),
		Date:       reg.Date.Format(domain.DateLayout),
		Rows:       make([]AttendanceRowResponse, len(reg.Rows)),
		Summary:    reg.Summary,
	}
	for i, row := range reg.Rows {
		resp.Rows[i] = ToAttendanceRowResponse(row)
	}
	return resp
}

// ToMonthlyCalendarResponse converts a domain calendar.
func ToMonthlyCalendarResponse(cal *domain.MonthlyCalendar) MonthlyCalendarResponse {
	resp := MonthlyCalendarResponse{
		PersonID:   cal.Person.PersonID,
		PersonType: string(cal.Person.PersonType),
		Name:       cal.Person.Name,
		Month:      cal.Month.Format("2006-01"),
		Days:       make([]AttendanceRowResponse, len(cal.Days)),
		Summary:    cal.Summary,
	}
	for i, day := range cal.Days {
		resp.Days[i] = ToAttendanceRowResponse(day)
	}
	return resp
}

// MarkAllResponse confirms a bulk status update.
type MarkAllResponse struct {
	PersonType string `json:"personType"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Updated    int    `json:"updated"`
}
