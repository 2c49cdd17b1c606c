package domain

import "time"

type TimeBlockKind string

const (
	TimeBlockBreak    TimeBlockKind = "break"
	TimeBlockTraining TimeBlockKind = "training"
	TimeBlockVacation TimeBlockKind = "vacation"
	TimeBlockOther    TimeBlockKind = "other"
)

func (k TimeBlockKind) IsValid() bool {
	switch k {
	case TimeBlockBreak, TimeBlockTraining, TimeBlockVacation, TimeBlockOther:
		return true
	}
	return false
}

// TimeBlock is a manual, non-appointment occupation of an employee's calendar.
type TimeBlock struct {
	ID         int64         `json:"id"`
	EmployeeID int64         `json:"employee_id"`
	Kind       TimeBlockKind `json:"kind"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	Reason     *string       `json:"reason"`
	CreatedBy  int64         `json:"created_by"`
	CreatedAt  time.Time     `json:"created_at"`
}

type CreateTimeBlockDTO struct {
	EmployeeID int64         `json:"employee_id" binding:"required"`
	Kind       TimeBlockKind `json:"kind" binding:"required"`
	StartTime  time.Time     `json:"start_time" binding:"required"`
	EndTime    time.Time     `json:"end_time" binding:"required"`
	Reason     *string       `json:"reason"`
}
