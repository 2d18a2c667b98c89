package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinRating           = 1
	MaxRating           = 5
	MaxCommentLength    = 2000
	MinUsernameLength   = 3
	MaxUsernameLength   = 30
	MaxCaravanNameLen   = 200
	MinCaravanCapacity  = 1
	MaxCaravanCapacity  = 20
	MaxDailyRate        = 1000000.0
	MaxReservationNights = 365
)

// ValidateRating проверяет, что оценка лежит в диапазоне от 1 до 5.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("рейтинг должен быть от %d до %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateComment проверяет, что комментарий непустой и не превышает лимит.
func ValidateComment(comment string) error {
	if strings.TrimSpace(comment) == "" {
		return fmt.Errorf("комментарий не может быть пустым")
	}
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return fmt.Errorf("комментарий должен быть не более %d символов", MaxCommentLength)
	}
	return nil
}

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateDailyRate проверяет суточную ставку каравана.
func ValidateDailyRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("суточная ставка должна быть положительной")
	}
	if rate > MaxDailyRate {
		return fmt.Errorf("суточная ставка должна быть не более %.0f", MaxDailyRate)
	}
	return nil
}

// ValidateCapacity проверяет вместимость каравана.
func ValidateCapacity(capacity int) error {
	if capacity < MinCaravanCapacity || capacity > MaxCaravanCapacity {
		return fmt.Errorf("вместимость должна быть от %d до %d", MinCaravanCapacity, MaxCaravanCapacity)
	}
	return nil
}
