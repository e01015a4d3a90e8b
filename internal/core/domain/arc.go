package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrArcTitleEmpty    = errors.New("arc title cannot be empty")
	ErrArcTitleTooLong  = errors.New("arc title is too long (max 100 chars)")
	ErrArcDescTooLong   = errors.New("arc description is too long (max 500 chars)")
	ErrArcInvalidUserID = errors.New("invalid user id")
	ErrArcInvalidColor  = errors.New("invalid color format (must be #RRGGBB)")
	ErrArcInvalidTarget = errors.New("target days cannot be negative")
	ErrArcArchived      = errors.New("cannot update an archived arc")
	ErrArcInvalidStatus = errors.New("invalid arc status (must be active, completed, or abandoned)")
)

var arcColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	ArcStatusActive    = "active"
	ArcStatusCompleted = "completed"
	ArcStatusAbandoned = "abandoned"

	MaxArcTitleLen = 100
	MaxArcDescLen  = 500
)

// Arc is a user-defined, time-boxed goal. Daily traces are logged against it.
type Arc struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description,omitempty" db:"description"`
	Color         string     `json:"color" db:"color"`
	Status        string     `json:"status" db:"status"`
	TargetDays    int        `json:"target_days" db:"target_days"`
	CurrentStreak int        `json:"current_streak" db:"current_streak"`
	LongestStreak int        `json:"longest_streak" db:"longest_streak"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	StartDate     time.Time  `json:"start_date" db:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty" db:"end_date"`
}

func validateArc(title, desc, color string, targetDays int) error {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return ErrArcTitleEmpty
	}
	if len(trimmedTitle) > MaxArcTitleLen {
		return ErrArcTitleTooLong
	}

	if len(strings.TrimSpace(desc)) > MaxArcDescLen {
		return ErrArcDescTooLong
	}

	if color != "" && !arcColorRegex.MatchString(color) {
		return ErrArcInvalidColor
	}

	if targetDays < 0 {
		return ErrArcInvalidTarget
	}

	return nil
}

func NewArc(userID, title, description, color string, targetDays int) (*Arc, error) {
	if userID == "" {
		return nil, ErrArcInvalidUserID
	}

	cleanDesc := strings.TrimSpace(description)

	if err := validateArc(title, cleanDesc, color, targetDays); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Arc{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: cleanDesc,
		Color:       color,
		Status:      ArcStatusActive,
		TargetDays:  targetDays,
		CreatedAt:   now,
		UpdatedAt:   now,
		StartDate:   now,
	}, nil
}

func (a *Arc) Update(title, description, color string, targetDays int) error {
	if a.ArchivedAt != nil {
		return ErrArcArchived
	}

	cleanDesc := strings.TrimSpace(description)

	if err := validateArc(title, cleanDesc, color, targetDays); err != nil {
		return err
	}

	a.Title = strings.TrimSpace(title)
	a.Description = cleanDesc
	a.Color = color
	a.TargetDays = targetDays
	a.UpdatedAt = time.Now().UTC()

	return nil
}

func (a *Arc) ChangeStatus(status string) error {
	if a.ArchivedAt != nil {
		return ErrArcArchived
	}

	switch status {
	case ArcStatusActive, ArcStatusCompleted, ArcStatusAbandoned:
	default:
		return ErrArcInvalidStatus
	}

	a.Status = status
	now := time.Now().UTC()
	if status != ArcStatusActive {
		a.EndDate = &now
	} else {
		a.EndDate = nil
	}
	a.UpdatedAt = now

	return nil
}

func (a *Arc) UpdateStreak(current, longest int) {
	a.CurrentStreak = current
	a.LongestStreak = longest
	a.UpdatedAt = time.Now().UTC()
}

func (a *Arc) Archive() {
	if a.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	a.ArchivedAt = &now
	a.UpdatedAt = now
}

func (a *Arc) Restore() {
	if a.ArchivedAt == nil {
		return
	}
	a.ArchivedAt = nil
	a.UpdatedAt = time.Now().UTC()
}
