package ean

// Class is the outcome of validating a scanned code.
type Class int

const (
	Invalid Class = iota
	Ean8
	Ean13
)

func (c Class) String() string {
	switch c {
	case Ean8:
		return "EAN-8"
	case Ean13:
		return "EAN-13"
	default:
		return "invalid"
	}
}

// Classify validates a scanned code exactly as received: no trimming, no
// normalization. Only 8- or 13-digit numeric strings with a correct
// weighted modulo-10 check digit are accepted.
func Classify(code string) Class {
	if len(code) != 8 && len(code) != 13 {
		return Invalid
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return Invalid
		}
	}

	// Weights alternate 3/1 starting at the digit next to the check
	// digit, which makes the same loop valid for both lengths.
	sum := 0
	weight := 3
	for i := len(code) - 2; i >= 0; i-- {
		sum += int(code[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	check := (10 - sum%10) % 10
	if int(code[len(code)-1]-'0') != check {
		return Invalid
	}

	if len(code) == 8 {
		return Ean8
	}
	return Ean13
}
