package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	jsEventRegex = regexp.MustCompile(`on\w+="[^"]*"`)
	dataURIRegex = regexp.MustCompile(`data:[^;]+;base64,[^"']+`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := htmlTagRegex.ReplaceAllString(input, "")
	sanitized = jsEventRegex.ReplaceAllString(sanitized, "")
	sanitized = dataURIRegex.ReplaceAllString(sanitized, "")
	return html.EscapeString(strings.TrimSpace(sanitized))
}

// ValidateRating validates a product rating
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("Rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}

// ValidateCouponValue checks if the coupon value is valid based on its type
func ValidateCouponValue(couponType string, value float64) error {
	if value < 0 {
		return fmt.Errorf("coupon amount cannot be negative")
	}
	if couponType == "percent" && value > 100 {
		return fmt.Errorf("percentage coupon value cannot exceed 100")
	}
	return nil
}
