package supplierweb

import "testing"

func TestPartURL(t *testing.T) {
	cases := []struct {
		supplier string
		sku      string
		want     string
	}{
		{"J.W.Zander GmbH & Co.KG", "1234", "https://zander.online/artikel/1234"},
		{"Alexander Buerkle", "0134989", "https://alexander-buerkle.com/de-de/produkt/0134989/"},
		{"Alexander Bürkle", "0134989", "https://alexander-buerkle.com/de-de/produkt/0134989/"},
		{"Sonepar", "0409027", "https://www.sonepar.de/dp/0409027"},
		{"Unknown Supplier", "1", ""},
	}
	for _, tc := range cases {
		if got := PartURL(tc.supplier, tc.sku); got != tc.want {
			t.Errorf("PartURL(%q, %q) = %q, want %q", tc.supplier, tc.sku, got, tc.want)
		}
	}
}

func TestPartURLWuerthTrimsPackQuantity(t *testing.T) {
	got := PartURL("Adolf Würth GmbH & Co. KG", "00578  10 1000")
	want := "https://www.wuerth.de/web/media/system/search_redirector.php" +
		"?SearchResultType=all&EffectiveSearchTerm=&ApiLocale=de_DE&VisibleSearchTerm=00578%20%2010"
	if got != want {
		t.Errorf("PartURL = %q, want %q", got, want)
	}
}

func TestPartImageURL(t *testing.T) {
	page := []byte(`<html><body>
		<img class="img-fluid js-socialshare-media" src="https://media.wuerth.com/std/29578767.jpg">
	</body></html>`)
	if got := PartImageURL("Adolf Würth GmbH & Co. KG", page); got != "https://media.wuerth.com/std/29578767.jpg" {
		t.Errorf("image url = %q", got)
	}

	if got := PartImageURL("Sonepar", page); got != "" {
		t.Errorf("non-Würth suppliers have no scrapeable image, got %q", got)
	}

	if got := PartImageURL("Würth", []byte("<html></html>")); got != "" {
		t.Errorf("missing image must yield empty, got %q", got)
	}
}
