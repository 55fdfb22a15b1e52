package catalog

import (
	"crypto/sha256"
	"encoding/hex"

	"datanorm/internal"
	"datanorm/internal/datanorm"
)

// Index holds one supplier group's lookup structures. It is immutable
// after BuildIndex returns and safe for concurrent readers.
type Index struct {
	GroupID string
	Comment string

	// Articles maps article number to the cross-file merge of all its
	// record fragments.
	Articles map[string]internal.MergedArticle
	// ByEAN maps a normalized EAN to the article numbers carrying it,
	// in first-seen file order. More than one entry means the source
	// data itself is ambiguous.
	ByEAN map[string][]string
	// GroupNames resolves product-group ids from WRG files.
	GroupNames map[string]internal.ProductGroupName

	Malformed   int
	Fingerprint string
}

// BuildIndex parses every file of the group and merges the records.
// The build is whole-index and idempotent: equal input bytes yield
// equal mappings, there is no incremental patching.
func BuildIndex(group SupplierGroup, profile datanorm.Profile) (*Index, error) {
	parser, err := datanorm.NewParser(profile)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		GroupID:     group.ID,
		Comment:     group.Comment,
		Articles:    map[string]internal.MergedArticle{},
		ByEAN:       map[string][]string{},
		GroupNames:  map[string]internal.ProductGroupName{},
		Fingerprint: Fingerprint(group),
	}

	// First-seen article order keeps the EAN map deterministic across
	// rebuilds even though Articles itself is map-ordered.
	articleOrder := []string{}
	for _, file := range group.Files {
		res := parser.Parse(group.ID, file.Name, file.Data)
		idx.Malformed += res.Stats.Malformed
		for _, rec := range res.Records {
			merged, seen := idx.Articles[rec.ArticleNumber]
			if !seen {
				articleOrder = append(articleOrder, rec.ArticleNumber)
			}
			mergeRecord(&merged, rec)
			idx.Articles[rec.ArticleNumber] = merged
		}
		for _, grp := range res.Groups {
			if _, seen := idx.GroupNames[grp.ID]; !seen {
				idx.GroupNames[grp.ID] = grp
			}
		}
	}

	for _, articleNumber := range articleOrder {
		if ean := idx.Articles[articleNumber].EAN; ean != "" {
			idx.ByEAN[ean] = append(idx.ByEAN[ean], articleNumber)
		}
	}

	return idx, nil
}

// Find returns the article numbers listed under an EAN, empty if none.
// A multi-element result is ambiguous source data; callers must not
// silently pick one.
func (idx *Index) Find(ean string) []string {
	return idx.ByEAN[ean]
}

// mergeRecord fills only fields that are still empty: first writer wins
// per field, later files never overwrite.
func mergeRecord(dst *internal.MergedArticle, rec internal.ArticleRecord) {
	if dst.ArticleNumber == "" {
		dst.ArticleNumber = rec.ArticleNumber
	}
	if dst.EAN == "" {
		dst.EAN = rec.EAN
	}
	if dst.ShortText1 == "" {
		dst.ShortText1 = rec.ShortText1
	}
	if dst.ShortText2 == "" {
		dst.ShortText2 = rec.ShortText2
	}
	if dst.Matchcode == "" {
		dst.Matchcode = rec.Matchcode
	}
	if dst.Unit == "" {
		dst.Unit = rec.Unit
	}
	if dst.ProductGroup == "" {
		dst.ProductGroup = rec.ProductGroup
	}
	if dst.Price == nil {
		dst.Price = rec.Price
	}
	if dst.PriceUnit == nil {
		dst.PriceUnit = rec.PriceUnit
	}
	dst.Sources = append(dst.Sources, rec.SourceFile)
}

// Fingerprint hashes the group's file names and contents. The cache
// invalidates on any fingerprint change.
func Fingerprint(group SupplierGroup) string {
	h := sha256.New()
	for _, file := range group.Files {
		h.Write([]byte(file.Name))
		h.Write([]byte{0})
		h.Write(file.Data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
