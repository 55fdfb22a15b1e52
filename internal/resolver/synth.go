package resolver

import (
	"fmt"
	"strings"

	"datanorm/internal"
	"datanorm/internal/catalog"
	"datanorm/internal/config"
	"datanorm/internal/supplierweb"
)

// Synthesizer turns matched, merged articles into draft records. Drafts
// are pure data; identifier allocation and find-or-create belong to the
// persistence collaborator.
type Synthesizer struct {
	cfg config.Config
}

func NewSynthesizer(cfg config.Config) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// GroupMatch pairs a supplier group's index with the article matched in
// it during one resolution pass.
type GroupMatch struct {
	Index   *catalog.Index
	Article internal.MergedArticle
}

// BuildPartDraft synthesizes the base part from the first match. The
// category path comes from the group's WRG names unless the default
// category is forced.
func (s *Synthesizer) BuildPartDraft(match GroupMatch, ean string) *internal.PartDraft {
	article := match.Article

	name := article.ShortText1
	if name == "" {
		name = article.ArticleNumber
	}
	description := strings.TrimSpace(strings.Join(nonEmpty(article.ShortText1, article.ShortText2), " "))

	keywords := nonEmpty(strings.TrimSpace(article.Matchcode), ean)

	return &internal.PartDraft{
		Name:         name,
		Description:  description,
		CategoryPath: s.categoryPath(match),
		Keywords:     keywords,
		Units:        FormatSIUnit(article.Unit),
		Purchaseable: true,
		Active:       true,
	}
}

// BuildEmptyPartDraft is the fallback for a valid EAN no catalog knows:
// a placeholder the host may still create.
func (s *Synthesizer) BuildEmptyPartDraft(ean string) *internal.PartDraft {
	return &internal.PartDraft{
		Name:         fmt.Sprintf("Unbekanntes Teil (EAN:%s)", ean),
		Description:  fmt.Sprintf("Bitte Teil manuell vervollständigen! EAN: %s", ean),
		CategoryPath: []string{s.cfg.DefaultCategory},
		Keywords:     []string{ean},
		Purchaseable: true,
		Active:       true,
	}
}

func (s *Synthesizer) BuildManufacturerDraft(guess *internal.ManufacturerGuess) *internal.ManufacturerDraft {
	if guess == nil {
		return nil
	}
	return &internal.ManufacturerDraft{Name: guess.Name}
}

func (s *Synthesizer) BuildManufacturerPartDraft(guess *internal.ManufacturerGuess, article internal.MergedArticle) *internal.ManufacturerPartDraft {
	if guess == nil {
		return nil
	}
	return &internal.ManufacturerPartDraft{
		ManufacturerName: guess.Name,
		MPN:              externalPartNumber(guess, article.ArticleNumber),
	}
}

// BuildSupplierPartDraft synthesizes one supplier listing for one
// matching group. The supplier identity is the group's comment; the
// part link is built offline from the known supplier web schemes.
func (s *Synthesizer) BuildSupplierPartDraft(match GroupMatch) internal.SupplierPartDraft {
	article := match.Article
	priceUnit := 1.0
	if article.PriceUnit != nil && *article.PriceUnit > 0 {
		priceUnit = *article.PriceUnit
	}
	return internal.SupplierPartDraft{
		GroupID:      match.Index.GroupID,
		SupplierName: match.Index.Comment,
		SKU:          article.ArticleNumber,
		Unit:         article.Unit,
		Price:        article.Price,
		PriceUnit:    priceUnit,
		Currency:     s.cfg.Currency,
		PackQuantity: "1",
		Link:         supplierweb.PartURL(match.Index.Comment, article.ArticleNumber),
	}
}

func (s *Synthesizer) categoryPath(match GroupMatch) []string {
	if s.cfg.UseDefaultCategory {
		return []string{s.cfg.DefaultCategory}
	}
	names, ok := match.Index.GroupNames[match.Article.ProductGroup]
	if !ok || names.Name == "" {
		return []string{s.cfg.DefaultCategory}
	}
	if names.MainName == "" {
		return []string{names.Name}
	}
	return []string{names.MainName, names.Name}
}

// FormatSIUnit maps DATANORM units of measure to SI units. Piece-like
// units map to the empty string, matching host conventions.
func FormatSIUnit(unit string) string {
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "MTR", "M", "LFM":
		return "m"
	case "KG":
		return "kg"
	case "STCK", "STK", "VE":
		return ""
	default:
		return ""
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
