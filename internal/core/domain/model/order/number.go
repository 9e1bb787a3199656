package order

import (
	"fmt"
	"regexp"

	"ordering/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
)

// numberLength is the count of characters after the leading '#'.
const numberLength = 8

var numberPattern = regexp.MustCompile(`^#[0-9A-HJKMNP-TV-Z]{8}$`)

// Number is the short, human-readable order code shown to customers and called out at
// the counter, e.g. "#7ZK3Q1MD". Uniqueness is enforced by storage; generation is best
// effort and callers retry on collision.
type Number string

// NumberGenerator produces candidate order numbers. It is a dependency of the order
// factory so tests can force collisions.
type NumberGenerator func() Number

// GenerateNumber takes the last eight Crockford base32 characters of a fresh ULID,
// i.e. 40 bits of its random component.
func GenerateNumber() Number {
	id := ulid.Make().String()
	return Number("#" + id[len(id)-numberLength:])
}

// ParseNumber validates the "#" + 8 Crockford base32 characters format.
func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%q is not a valid order number", s))
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}

func (n Number) Validate() error {
	_, err := ParseNumber(string(n))
	return err
}
