package supplierweb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PartURL builds the product page link for the known supplier webshops,
// matched by substring against the supplier name. Unknown suppliers get
// no link. Pure string construction; no network I/O happens here.
func PartURL(supplier, sku string) string {
	upper := strings.ToUpper(supplier)
	switch {
	case strings.Contains(upper, "WÜRTH") || strings.Contains(upper, "WUERTH"):
		return wuerthPartURL(sku)
	case strings.Contains(upper, "ZANDER"):
		return fmt.Sprintf("https://zander.online/artikel/%s", sku)
	case strings.Contains(upper, "BÜRKLE") || strings.Contains(upper, "BUERKLE"):
		return fmt.Sprintf("https://alexander-buerkle.com/de-de/produkt/%s/", sku)
	case strings.Contains(upper, "SONEPAR"):
		return fmt.Sprintf("https://www.sonepar.de/dp/%s", sku)
	default:
		return ""
	}
}

// wuerthPartURL routes through the shop's search redirector. Würth SKUs
// end in a five-character package quantity that must be trimmed before
// searching.
func wuerthPartURL(sku string) string {
	trimmed := sku
	if len(trimmed) > 5 {
		trimmed = trimmed[:len(trimmed)-5]
	}
	term := strings.ReplaceAll(strings.TrimSpace(trimmed), " ", "%20")
	return "https://www.wuerth.de/web/media/system/search_redirector.php" +
		"?SearchResultType=all&EffectiveSearchTerm=&ApiLocale=de_DE&VisibleSearchTerm=" + term
}

// PartImageURL extracts the product image URL from an already fetched
// product page. Fetching is the host's job; only the Würth shop embeds
// the image in plain markup, the other shops serve it via their APIs.
func PartImageURL(supplier string, pageHTML []byte) string {
	upper := strings.ToUpper(supplier)
	if !strings.Contains(upper, "WÜRTH") && !strings.Contains(upper, "WUERTH") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return ""
	}

	imgURL := ""
	doc.Find("img.js-socialshare-media").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if src, ok := img.Attr("src"); ok && src != "" {
			imgURL = src
			return false
		}
		if lazy, ok := img.Attr("data-lazy"); ok && lazy != "" {
			imgURL = lazy
			return false
		}
		return true
	})
	return imgURL
}
