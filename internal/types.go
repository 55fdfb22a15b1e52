package internal

// ArticleRecord is one parsed line of one DATANORM file. Fields the line
// does not carry stay empty and are filled during the cross-file merge.
type ArticleRecord struct {
	GroupID       string
	SourceFile    string
	ArticleNumber string
	EAN           string
	ShortText1    string
	ShortText2    string
	Matchcode     string
	Unit          string
	ProductGroup  string
	Price         *float64
	PriceUnit     *float64
}

// ProductGroupName maps a product-group id from a WRG file to its
// display names.
type ProductGroupName struct {
	ID       string
	Name     string
	MainName string
}

// MergedArticle is the field-wise union of all records for one article
// number across a supplier group's files, first writer wins per field.
type MergedArticle struct {
	ArticleNumber string
	EAN           string
	ShortText1    string
	ShortText2    string
	Matchcode     string
	Unit          string
	ProductGroup  string
	Price         *float64
	PriceUnit     *float64
	Sources       []string
}

type ResolutionStatus string

const (
	StatusRejected  ResolutionStatus = "REJECTED"
	StatusNotFound  ResolutionStatus = "NOT_FOUND"
	StatusAmbiguous ResolutionStatus = "AMBIGUOUS"
	StatusResolved  ResolutionStatus = "RESOLVED"
)

// ManufacturerGuess is the heuristic maker-name extraction result.
type ManufacturerGuess struct {
	Name string
	// Rest holds the short-text tokens following the name run.
	Rest []string
}

type PartDraft struct {
	Name         string
	Description  string
	CategoryPath []string
	Keywords     []string
	Units        string
	Purchaseable bool
	Active       bool
}

type ManufacturerDraft struct {
	Name string
}

type ManufacturerPartDraft struct {
	ManufacturerName string
	MPN              string
}

type SupplierPartDraft struct {
	GroupID      string
	SupplierName string
	SKU          string
	Unit         string
	Price        *float64
	PriceUnit    float64
	Currency     string
	PackQuantity string
	Link         string
}

// AmbiguousMatch reports one EAN mapping to several article numbers
// inside a single supplier group. The caller decides the policy.
type AmbiguousMatch struct {
	GroupID        string
	Comment        string
	EAN            string
	ArticleNumbers []string
}

// Resolution is the terminal outcome of one scan request. Drafts are
// transient; nothing here is persisted by the core.
type Resolution struct {
	Code             string
	Status           ResolutionStatus
	Part             *PartDraft
	Manufacturer     *ManufacturerDraft
	ManufacturerPart *ManufacturerPartDraft
	SupplierParts    []SupplierPartDraft
	Ambiguous        []AmbiguousMatch
	GroupsConsulted  int
	MalformedLines   int
}

type AttachmentRow struct {
	ID        int
	Name      string
	Comment   string
	Hash      string
	RawRef    string
	CreatedAt string
}

type ScanRow struct {
	ID             int
	Code           string
	Status         string
	Groups         int
	MalformedLines int
	CreatedAt      string
}
