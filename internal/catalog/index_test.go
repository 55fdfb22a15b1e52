package catalog

import (
	"reflect"
	"testing"

	"datanorm/internal/datanorm"
)

func testProfile(t *testing.T) datanorm.Profile {
	t.Helper()
	profile, err := datanorm.ProfileByName("datanorm4")
	if err != nil {
		t.Fatal(err)
	}
	return profile
}

func TestGroupFilesByNormalizedComment(t *testing.T) {
	files := []SourceFile{
		{Name: "b.001", Comment: "  zander "},
		{Name: "a.001", Comment: "Zander"},
		{Name: "c.001", Comment: "Würth"},
		{Name: "d.001", Comment: ""},
	}

	groups := GroupFiles(files)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].ID != "würth" || groups[1].ID != "zander" {
		t.Fatalf("unexpected group order: %q, %q", groups[0].ID, groups[1].ID)
	}
	zander := groups[1]
	if len(zander.Files) != 2 || zander.Files[0].Name != "a.001" || zander.Files[1].Name != "b.001" {
		t.Errorf("files not sorted by name: %+v", zander.Files)
	}
}

func TestBuildIndexJoinsAcrossFiles(t *testing.T) {
	group := SupplierGroup{
		ID:      "zander",
		Comment: "Zander",
		Files: []SourceFile{
			{Name: "a.001", Data: []byte("A;N;100;00;HAGER breaker;;1;1;Stck;1000;;;WG\n")},
			{Name: "b.001", Data: []byte("B;N;100;;;;;;;4012345678901\n")},
			{Name: "c.001", Data: []byte("A;N;100;00;conflicting text;;1;1;Stck;2000;;;WG\n")},
		},
	}

	idx, err := BuildIndex(group, testProfile(t))
	if err != nil {
		t.Fatal(err)
	}

	merged, ok := idx.Articles["100"]
	if !ok {
		t.Fatal("article 100 missing")
	}
	if merged.ShortText1 != "HAGER breaker" {
		t.Errorf("short text = %q, later file must not overwrite", merged.ShortText1)
	}
	if merged.EAN != "4012345678901" {
		t.Errorf("ean = %q, join did not fill the gap", merged.EAN)
	}
	if merged.Price == nil || *merged.Price != 10.00 {
		t.Errorf("price = %v, first writer must win", merged.Price)
	}

	if got := idx.Find("4012345678901"); len(got) != 1 || got[0] != "100" {
		t.Errorf("Find = %v, want [100]", got)
	}
	if got := idx.Find("0000000000000"); len(got) != 0 {
		t.Errorf("Find on unknown EAN = %v, want empty", got)
	}
}

func TestBuildIndexIdempotent(t *testing.T) {
	group := SupplierGroup{
		ID:      "g",
		Comment: "G",
		Files: []SourceFile{
			{Name: "a.001", Data: []byte("A;N;1;00;Alpha;;1;1;Stck;100;;;W\nA;N;2;00;Beta;;1;1;Stck;200;;;W\n")},
			{Name: "b.001", Data: []byte("B;N;1;;;;;;;4006381333931\nB;N;2;;;;;;;4012195583943\n")},
		},
	}
	profile := testProfile(t)

	first, err := BuildIndex(group, profile)
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildIndex(group, profile)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.Articles, second.Articles) {
		t.Error("article maps differ between rebuilds")
	}
	if !reflect.DeepEqual(first.ByEAN, second.ByEAN) {
		t.Error("EAN maps differ between rebuilds")
	}
	if first.Fingerprint != second.Fingerprint {
		t.Error("fingerprints differ between rebuilds")
	}
}

func TestBuildIndexSurfacesAmbiguity(t *testing.T) {
	group := SupplierGroup{
		ID:      "g",
		Comment: "G",
		Files: []SourceFile{
			{Name: "a.001", Data: []byte(
				"A;N;1;00;Alpha;;1;1;Stck;100;;;W\n" +
					"B;N;1;;;;;;;4006381333931\n" +
					"A;N;2;00;Beta;;1;1;Stck;200;;;W\n" +
					"B;N;2;;;;;;;4006381333931\n")},
		},
	}

	idx, err := BuildIndex(group, testProfile(t))
	if err != nil {
		t.Fatal(err)
	}
	got := idx.Find("4006381333931")
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Fatalf("Find = %v, want both article numbers in file order", got)
	}
}

func TestCacheReusesUntilContentChanges(t *testing.T) {
	profile := testProfile(t)
	group := SupplierGroup{
		ID:      "g",
		Comment: "G",
		Files:   []SourceFile{{Name: "a.001", Data: []byte("A;N;1;00;Alpha;;1;1;Stck;100;;;W\n")}},
	}

	cache := NewCache()
	first, err := cache.IndexFor(group, profile)
	if err != nil {
		t.Fatal(err)
	}
	again, err := cache.IndexFor(group, profile)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("unchanged content must return the cached index instance")
	}

	group.Files[0].Data = []byte("A;N;1;00;Alpha neu;;1;1;Stck;100;;;W\n")
	rebuilt, err := cache.IndexFor(group, profile)
	if err != nil {
		t.Fatal(err)
	}
	if rebuilt == first {
		t.Error("changed content must rebuild the index")
	}
	if rebuilt.Articles["1"].ShortText1 != "Alpha neu" {
		t.Errorf("rebuilt index stale: %+v", rebuilt.Articles["1"])
	}
}
