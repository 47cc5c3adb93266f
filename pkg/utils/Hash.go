package utils

import "crypto/sha256"
import "fmt"
import "strings"


/*
	hash the content of a payment for duplicate detection

	the hash deliberately excludes the transaction id and timestamp so that a
	resubmission of the same payment under a fresh id still collides
*/

func ContentHash(parts ...string) string {
	content := strings.Join(parts, ":")

	hasher := sha256.New()
	hasher.Write([]byte(content))
	hashBytes := hasher.Sum(nil)

	return fmt.Sprintf("%x", hashBytes)
}
