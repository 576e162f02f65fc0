package engine

import (
	"context"
	"fmt"
	"strings"

	"grindstone/internal/storage"
)

var validGrades = map[string]bool{
	"A+": true, "A": true, "A-": true,
	"B+": true, "B": true, "B-": true,
	"C+": true, "C": true, "C-": true,
	"D": true, "F": true,
}

// SetGrade records the diary grade shown on that date's daily score.
func (s *Service) SetGrade(ctx context.Context, date, grade string) error {
	if _, err := ParseDate(date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	grade = strings.ToUpper(strings.TrimSpace(grade))
	if !validGrades[grade] {
		return fmt.Errorf("invalid grade %q", grade)
	}

	e, err := s.diary.Get(ctx, date)
	if err != nil {
		return err
	}
	if e == nil {
		e = &storage.DiaryEntry{Date: date}
	}
	e.Grade = &grade
	return s.diary.Upsert(ctx, e)
}

// SetReflection records the morning reflection for a date.
func (s *Service) SetReflection(ctx context.Context, date, text string) error {
	return s.setDiaryText(ctx, date, text, func(e *storage.DiaryEntry, v *string) { e.Reflection = v })
}

// SetDebrief records the end-of-day debrief for a date.
func (s *Service) SetDebrief(ctx context.Context, date, text string) error {
	return s.setDiaryText(ctx, date, text, func(e *storage.DiaryEntry, v *string) { e.Debrief = v })
}

func (s *Service) setDiaryText(ctx context.Context, date, text string, assign func(*storage.DiaryEntry, *string)) error {
	if _, err := ParseDate(date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text is required")
	}

	e, err := s.diary.Get(ctx, date)
	if err != nil {
		return err
	}
	if e == nil {
		e = &storage.DiaryEntry{Date: date}
	}
	assign(e, &text)
	return s.diary.Upsert(ctx, e)
}
