package extraction

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

// minPhoneDigits keeps year ranges such as "2019-2021" from reading as phone numbers.
const minPhoneDigits = 10

// Contact holds the contact details found in resume text
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// FindContact returns the first email address and phone number in text.
func FindContact(text string) Contact {
	var c Contact
	c.Email = emailPattern.FindString(text)

	for _, candidate := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= minPhoneDigits && digits <= 15 {
			c.Phone = strings.TrimSpace(candidate)
			break
		}
	}
	return c
}
