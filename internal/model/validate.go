package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[,;*?<>|":\\/]`)
	nonASCII         = regexp.MustCompile(`[^\x00-\x7F]`)
)

// ValidateName trims a cargo name and checks it against the allowed
// character set. The trimmed name is returned on success.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if invalidNameChars.MatchString(name) {
		return "", &ValidationError{Field: "name", Message: fmt.Sprintf("%q contains forbidden characters", name)}
	}
	if nonASCII.MatchString(name) {
		return "", &ValidationError{Field: "name", Message: fmt.Sprintf("%q contains non-ASCII characters", name)}
	}
	return name, nil
}

// ValidateCargoSpec checks a cargo record before a type is created from it:
// the name must be valid, quantity and dimensions must be positive whole
// numbers and the box must fit the container in its nominal orientation.
// The returned spec carries the normalized name.
func ValidateCargoSpec(spec CargoSpec, c Container) (CargoSpec, error) {
	name, err := ValidateName(spec.Name)
	if err != nil {
		return CargoSpec{}, err
	}
	spec.Name = name

	if spec.Qty <= 0 {
		return CargoSpec{}, &ValidationError{Field: "qty", Message: fmt.Sprintf("must be positive, got %d", spec.Qty)}
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"length", spec.Length},
		{"width", spec.Width},
		{"height", spec.Height},
		{"weight", spec.Weight},
	}
	for _, f := range fields {
		if f.value <= 0 || f.value != math.Trunc(f.value) {
			return CargoSpec{}, &ValidationError{Field: f.name, Message: fmt.Sprintf("must be a positive whole number, got %g", f.value)}
		}
	}

	if spec.Length > c.Length || spec.Width > c.Width || spec.Height > c.Height {
		return CargoSpec{}, &ValidationError{
			Field: "dimensions",
			Message: fmt.Sprintf("%.0f x %.0f x %.0f exceeds container %.0f x %.0f x %.0f",
				spec.Length, spec.Width, spec.Height, c.Length, c.Width, c.Height),
		}
	}
	return spec, nil
}
