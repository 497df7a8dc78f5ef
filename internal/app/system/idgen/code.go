package idgen

import (
	"fmt"
	"math/rand/v2"
	"regexp"
)

var (
	generatedCodeRE = regexp.MustCompile(`^[A-Z]\d{6}$`)
	acceptedCodeRE  = regexp.MustCompile(`^[A-Z]\d{5,6}$`)
)

// CampaignCode returns one uppercase ASCII letter followed by a random number
// in [100000, 999999]. The result is always seven characters long.
//
// Codes are not guaranteed unique; the caller checks the campaign store and
// asks again on a collision.
func CampaignCode() string {
	letter := byte('A' + rand.IntN(26))
	n := 100000 + rand.IntN(900000)
	return fmt.Sprintf("%c%06d", letter, n)
}

// IsGeneratedCode reports whether code has the shape CampaignCode produces.
func IsGeneratedCode(code string) bool {
	return generatedCodeRE.MatchString(code)
}

// IsValidCampaignCode reports whether code is acceptable when supplied by a
// caller: one uppercase letter and five or six digits.
func IsValidCampaignCode(code string) bool {
	return acceptedCodeRE.MatchString(code)
}
