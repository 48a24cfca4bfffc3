package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const MaxTagLength = 50

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	tagRegex      = regexp.MustCompile(`^[\p{Ll}\p{N}][\p{Ll}\p{N} _&'-]*$`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// IsValidEmail checks if the email format is valid
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidUsername checks if the username format is valid
func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// NormalizeTag lowercases and trims a tag and collapses inner whitespace
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return spaceRun.ReplaceAllString(tag, " ")
}

// NormalizeTags normalizes each tag, dropping empties and repeats. Order is kept.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// IsValidTag reports whether tag, once normalized, is a usable tag
func IsValidTag(tag string) bool {
	n := NormalizeTag(tag)
	return n != "" && len(n) <= MaxTagLength && tagRegex.MatchString(n)
}

// Register adds the custom "tag" rule to gin's binding validator,
// for use as `binding:"dive,tag"` on tag lists
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("tag", func(fl validator.FieldLevel) bool {
		return IsValidTag(fl.Field().String())
	})
}

// Message turns a binding error into a short client-facing message
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "tag":
		return fe.Field() + " contains an invalid tag"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "max":
		return fe.Field() + " is too long"
	default:
		return fe.Field() + " is invalid"
	}
}
