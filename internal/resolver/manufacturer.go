package resolver

import (
	"strings"
	"unicode"

	"datanorm/internal"
	"datanorm/internal/util"
)

// ExtractManufacturer guesses the maker name from a short text. The
// leading run of all-uppercase-letters tokens is taken as the name;
// the run ends at the first token containing anything else. Returns
// nil when the text does not start with such a run. Mixed-case makers
// and all-caps product codes defeat the heuristic; both are accepted.
func ExtractManufacturer(shortText1 string) *internal.ManufacturerGuess {
	tokens := strings.Fields(shortText1)
	run := 0
	for _, token := range tokens {
		if !isUppercaseWord(token) {
			break
		}
		run++
	}
	if run == 0 {
		return nil
	}
	return &internal.ManufacturerGuess{
		Name: strings.Join(tokens[:run], " "),
		Rest: tokens[run:],
	}
}

func isUppercaseWord(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) || !unicode.IsUpper(r) {
			return false
		}
	}
	return token != ""
}

// externalPartNumber picks the MPN for the manufacturer part: the first
// code-shaped token after the maker name (DATANORM short texts put the
// maker's type code right after the maker), else the article number.
func externalPartNumber(guess *internal.ManufacturerGuess, articleNumber string) string {
	if guess != nil {
		for _, token := range guess.Rest {
			if util.LooksLikeCode(token) {
				return token
			}
		}
	}
	return articleNumber
}
