package datanorm

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"datanorm/internal"
)

// Stats carries per-file parse diagnostics. Malformed lines never abort
// the file; they are skipped and counted for the caller.
type Stats struct {
	Lines     int
	Parsed    int
	Skipped   int
	Malformed int
}

// Result is the decoded content of one file: article fragments plus any
// product-group name records the file carried.
type Result struct {
	Records []internal.ArticleRecord
	Groups  []internal.ProductGroupName
	Stats   Stats
}

type Parser struct {
	profile Profile
	decoder *encoding.Decoder
}

func NewParser(profile Profile) (*Parser, error) {
	decoder, err := decoderFor(profile.Encoding)
	if err != nil {
		return nil, err
	}
	return &Parser{profile: profile, decoder: decoder}, nil
}

func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "cp850", "ibm850":
		return charmap.CodePage850.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}

// Parse streams the file line by line and decodes every recognized
// record into an ArticleRecord. Recovery is per line: a bad charset
// sequence or a recognized record with too few fields skips that line
// and bumps the malformed counter, never the whole file.
func (p *Parser) Parse(groupID, sourceFile string, blob []byte) Result {
	res := Result{}
	scanner := bufio.NewScanner(bytes.NewReader(blob))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		raw := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		res.Stats.Lines++

		line, ok := p.decodeLine(raw)
		if !ok {
			res.Stats.Malformed++
			continue
		}

		fields := strings.Split(line, p.profile.Delimiter)
		if p.profile.TypeIndex >= len(fields) {
			res.Stats.Skipped++
			continue
		}
		tag := strings.TrimSpace(fields[p.profile.TypeIndex])
		fieldMap, recognized := p.profile.Records[tag]
		if !recognized {
			res.Stats.Skipped++
			continue
		}
		if len(fields) < fieldMap.minFields() {
			res.Stats.Malformed++
			continue
		}

		if _, isGroup := fieldMap[FieldGroupName]; isGroup {
			res.Groups = append(res.Groups, internal.ProductGroupName{
				ID:       pick(fields, fieldMap, FieldProductGroup),
				Name:     pick(fields, fieldMap, FieldGroupName),
				MainName: pick(fields, fieldMap, FieldMainGroupName),
			})
			res.Stats.Parsed++
			continue
		}

		rec := internal.ArticleRecord{
			GroupID:       groupID,
			SourceFile:    sourceFile,
			ArticleNumber: pick(fields, fieldMap, FieldArticleNumber),
			EAN:           normalizeEAN(pick(fields, fieldMap, FieldEAN)),
			ShortText1:    pick(fields, fieldMap, FieldShortText1),
			ShortText2:    pick(fields, fieldMap, FieldShortText2),
			Matchcode:     pick(fields, fieldMap, FieldMatchcode),
			Unit:          pick(fields, fieldMap, FieldUnit),
			ProductGroup:  pick(fields, fieldMap, FieldProductGroup),
		}
		if idx, ok := fieldMap[FieldPrice]; ok {
			rec.Price = p.parsePrice(fields[idx])
		}
		if idx, ok := fieldMap[FieldPriceUnit]; ok {
			rec.PriceUnit = parseDecimal(fields[idx])
		}
		if rec.ArticleNumber == "" {
			res.Stats.Malformed++
			continue
		}

		res.Records = append(res.Records, rec)
		res.Stats.Parsed++
	}

	return res
}

func (p *Parser) decodeLine(raw []byte) (string, bool) {
	if p.decoder == nil {
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	}
	decoded, err := p.decoder.Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func (p *Parser) parsePrice(field string) *float64 {
	value := parseDecimal(field)
	if value == nil {
		return nil
	}
	if p.profile.PriceInHundredths {
		v := *value / 100
		return &v
	}
	return value
}

// parseDecimal tolerates the comma decimal separator found in older
// exports. Unparseable values yield an absent field, not an error.
func parseDecimal(field string) *float64 {
	s := strings.TrimSpace(field)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// normalizeEAN keeps the digit string only: index keys never carry
// surrounding whitespace from the file.
func normalizeEAN(raw string) string {
	s := strings.TrimSpace(raw)
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return ""
		}
	}
	return s
}

func pick(fields []string, fieldMap FieldMap, field Field) string {
	idx, ok := fieldMap[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}
