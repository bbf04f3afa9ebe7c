package utils

import (
	"fmt"
	"math/rand"
)

// GenerateCode returns a 6-digit numeric code for email verification and
// password resets.
func GenerateCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
