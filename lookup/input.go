package lookup

import "strings"

// NormalizeInput strips placeholder text and surrounding whitespace from raw
// entry text. It returns an empty string when nothing usable remains.
func NormalizeInput(raw, placeholder string) string {
	text := strings.TrimSpace(raw)
	if placeholder != "" && text == strings.TrimSpace(placeholder) {
		return ""
	}
	return text
}

// Placeholder returns the hint text shown in the entry of a module
func Placeholder(k Kind) string {
	switch k {
	case KindPhone:
		return "+1 (123) 456-7890"
	case KindIP:
		return "123.45.67.89"
	case KindUsername:
		return "username"
	case KindDomain:
		return "example.com"
	case KindDork:
		return "search term"
	default:
		return ""
	}
}

// InputLabel returns the label shown above the entry of a module
func InputLabel(k Kind) string {
	switch k {
	case KindPhone:
		return "Phone Number"
	case KindIP:
		return "IP Address"
	case KindUsername:
		return "Username"
	case KindDomain:
		return "Domain"
	case KindDork:
		return "Target"
	default:
		return ""
	}
}

// orNA substitutes N/A for missing values in rendered records
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// yesNo renders a flag the way the result area shows it
func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
