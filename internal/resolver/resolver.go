package resolver

import (
	"datanorm/internal"
	"datanorm/internal/catalog"
	"datanorm/internal/config"
	"datanorm/internal/datanorm"
	"datanorm/internal/ean"
)

// AttachmentSource is the collaborator holding the raw DATANORM files.
// Implementations must return every configured catalog attachment with
// its descriptive comment.
type AttachmentSource interface {
	CatalogFiles() ([]catalog.SourceFile, error)
}

// Resolver runs one scan request: validate, look the EAN up in every
// supplier group's index, extract a manufacturer, synthesize drafts.
// Resolution is synchronous and side-effect free; indexes come from the
// process-wide cache.
type Resolver struct {
	cfg    config.Config
	source AttachmentSource
	cache  *catalog.Cache
	synth  *Synthesizer
}

func New(cfg config.Config, source AttachmentSource) *Resolver {
	return &Resolver{
		cfg:    cfg,
		source: source,
		cache:  catalog.NewCache(),
		synth:  NewSynthesizer(cfg),
	}
}

// Resolve terminates in exactly one state: Rejected (bad code, no file
// access), NotFound, Ambiguous (only conflicting matches) or Resolved
// with drafts. I/O errors from the attachment source propagate as-is.
func (r *Resolver) Resolve(code string) (internal.Resolution, error) {
	res := internal.Resolution{Code: code}

	if ean.Classify(code) == ean.Invalid {
		res.Status = internal.StatusRejected
		return res, nil
	}

	files, err := r.source.CatalogFiles()
	if err != nil {
		return internal.Resolution{}, err
	}
	groups := catalog.GroupFiles(files)

	matches := []GroupMatch{}
	for _, group := range groups {
		profile, err := r.profileFor(group.ID)
		if err != nil {
			return internal.Resolution{}, err
		}
		idx, err := r.cache.IndexFor(group, profile)
		if err != nil {
			return internal.Resolution{}, err
		}
		res.GroupsConsulted++
		res.MalformedLines += idx.Malformed

		articleNumbers := idx.Find(code)
		switch {
		case len(articleNumbers) == 0:
			continue
		case len(articleNumbers) > 1:
			res.Ambiguous = append(res.Ambiguous, internal.AmbiguousMatch{
				GroupID:        idx.GroupID,
				Comment:        idx.Comment,
				EAN:            code,
				ArticleNumbers: articleNumbers,
			})
		default:
			matches = append(matches, GroupMatch{Index: idx, Article: idx.Articles[articleNumbers[0]]})
		}
	}

	if len(matches) == 0 {
		if len(res.Ambiguous) > 0 {
			res.Status = internal.StatusAmbiguous
			return res, nil
		}
		res.Status = internal.StatusNotFound
		return res, nil
	}

	// Manufacturer identity is assumed shared across supplier listings
	// of the same physical part, so extraction runs once on the first
	// match and the manufacturer drafts are shared.
	first := matches[0]
	guess := ExtractManufacturer(first.Article.ShortText1)

	res.Status = internal.StatusResolved
	res.Part = r.synth.BuildPartDraft(first, code)
	res.Manufacturer = r.synth.BuildManufacturerDraft(guess)
	res.ManufacturerPart = r.synth.BuildManufacturerPartDraft(guess, first.Article)
	for _, match := range matches {
		res.SupplierParts = append(res.SupplierParts, r.synth.BuildSupplierPartDraft(match))
	}
	return res, nil
}

// FallbackDraft synthesizes the placeholder part for a NotFound code,
// for hosts that create unknown-part stubs.
func (r *Resolver) FallbackDraft(code string) *internal.PartDraft {
	return r.synth.BuildEmptyPartDraft(code)
}

func (r *Resolver) profileFor(groupID string) (datanorm.Profile, error) {
	name := r.cfg.DefaultProfile
	if override, ok := r.cfg.ProfileOverrides[groupID]; ok {
		name = override
	}
	return datanorm.ProfileByName(name)
}
