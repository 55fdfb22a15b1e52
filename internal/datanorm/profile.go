package datanorm

import (
	"fmt"
	"sort"
)

// Field names a logical article field a profile can map to a position.
type Field string

const (
	FieldArticleNumber Field = "article_number"
	FieldEAN           Field = "ean"
	FieldShortText1    Field = "short_text1"
	FieldShortText2    Field = "short_text2"
	FieldMatchcode     Field = "matchcode"
	FieldUnit          Field = "unit"
	FieldPrice         Field = "price"
	FieldPriceUnit     Field = "price_unit"
	FieldProductGroup  Field = "product_group"
	FieldGroupName     Field = "group_name"
	FieldMainGroupName Field = "main_group_name"
)

// FieldMap locates the fields one record tag carries on a split line.
type FieldMap map[Field]int

// minFields is the field count a line needs for every mapped position
// to exist. Shorter recognized lines count as malformed.
func (m FieldMap) minFields() int {
	max := -1
	for _, idx := range m {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}

// Profile describes one supplier's DATANORM dialect. Suppliers diverge
// in delimiter and charset across the historical format versions, so
// the per-supplier variance lives entirely in configuration.
type Profile struct {
	Name      string
	Delimiter string
	Encoding  string
	TypeIndex int
	// Records maps a record-type tag to the fields that record carries.
	// Unrecognized tags are skipped without counting as malformed.
	Records map[string]FieldMap
	// PriceInHundredths divides parsed prices by 100, the usual
	// DATANORM wire representation.
	PriceInHundredths bool
}

// v4Records is the DATANORM v4 record layout: `A` main records, `B`
// extension records (match code, EAN), `P` price records from DATPREIS
// files and `S` product-group records from WRG files.
var v4Records = map[string]FieldMap{
	"A": {
		FieldArticleNumber: 2,
		FieldShortText1:    4,
		FieldShortText2:    5,
		FieldPriceUnit:     7,
		FieldUnit:          8,
		FieldPrice:         9,
		FieldProductGroup:  12,
	},
	"B": {
		FieldArticleNumber: 2,
		FieldMatchcode:     3,
		FieldEAN:           9,
	},
	"P": {
		FieldArticleNumber: 2,
		FieldPrice:         4,
	},
	"S": {
		FieldProductGroup:  1,
		FieldGroupName:     2,
		FieldMainGroupName: 3,
	},
}

// Builtin profiles. Semicolon-delimited ISO 8859-1 is the common case;
// the cp850 variant covers suppliers still exporting with the old DOS
// codepage.
var builtinProfiles = map[string]Profile{
	"datanorm4": {
		Name:              "datanorm4",
		Delimiter:         ";",
		Encoding:          "iso-8859-1",
		TypeIndex:         0,
		Records:           v4Records,
		PriceInHundredths: true,
	},
	"datanorm4-cp850": {
		Name:              "datanorm4-cp850",
		Delimiter:         ";",
		Encoding:          "cp850",
		TypeIndex:         0,
		Records:           v4Records,
		PriceInHundredths: true,
	},
}

func ProfileByName(name string) (Profile, error) {
	profile, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown datanorm profile: %s", name)
	}
	return profile, nil
}

func ProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
