package datanorm

import (
	"regexp"
	"strings"
)

// FileKind classifies a DATANORM distribution file by name. Suppliers
// ship article data split across a base file, a product-group file and
// a price file; the names identify the split.
type FileKind string

const (
	KindBase         FileKind = "base"
	KindProductGroup FileKind = "product_group"
	KindPrice        FileKind = "price"
	KindUnknown      FileKind = "unknown"
)

var reNumericExt = regexp.MustCompile(`\.\d{3}$`)

// DetectKind recognizes the conventional DATANORM file names:
// DATANORM.001 etc. for base files, *.WRG for product groups and
// DATPREIS.* for price files.
func DetectKind(name string) FileKind {
	lower := strings.ToLower(strings.TrimSpace(name))
	base := lower
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}

	switch {
	case strings.HasPrefix(base, "datpreis"):
		return KindPrice
	case strings.HasSuffix(base, ".wrg"):
		return KindProductGroup
	case strings.HasPrefix(base, "datanorm"), reNumericExt.MatchString(base):
		return KindBase
	default:
		return KindUnknown
	}
}
