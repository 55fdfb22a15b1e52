package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"datanorm/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	tmp := t.TempDir()
	db, err := Open(filepath.Join(tmp, "app.db"), filepath.Join(tmp, "raw"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAttachmentRoundTrip(t *testing.T) {
	db := openTestDB(t)

	blob := []byte("A;N;1;00;Alpha;;1;1;Stck;100;;;W\n")
	row, err := db.AddAttachment("datanorm.001", "Zander", blob)
	if err != nil {
		t.Fatal(err)
	}
	if row.ID == 0 || row.Hash == "" {
		t.Fatalf("incomplete row: %+v", row)
	}

	files, err := db.CatalogFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %d, want 1", len(files))
	}
	if files[0].Comment != "Zander" || string(files[0].Data) != string(blob) {
		t.Errorf("round trip lost data: %+v", files[0])
	}
}

func TestAttachmentUpsertByName(t *testing.T) {
	db := openTestDB(t)

	first, err := db.AddAttachment("datanorm.001", "Zander", []byte("old"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.AddAttachment("datanorm.001", "Zander", []byte("new"))
	if err != nil {
		t.Fatal(err)
	}
	if first.Hash == second.Hash {
		t.Error("hash must follow content")
	}

	rows, err := db.ListAttachments()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 after upsert", len(rows))
	}
}

func TestRemoveAttachment(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.AddAttachment("datanorm.001", "Zander", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := db.RemoveAttachment("datanorm.001"); err != nil {
		t.Fatal(err)
	}
	rows, err := db.ListAttachments()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
	if err := db.RemoveAttachment("datanorm.001"); err == nil {
		t.Error("removing a missing attachment must fail")
	}
}

func TestScanLog(t *testing.T) {
	db := openTestDB(t)

	res := internal.Resolution{
		Code:            "4006381333931",
		Status:          internal.StatusResolved,
		GroupsConsulted: 2,
		MalformedLines:  1,
	}
	if err := db.InsertScan(res); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertScan(internal.Resolution{Code: "bad", Status: internal.StatusRejected}); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListScans(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Code != "bad" {
		t.Errorf("expected newest first, got %+v", rows[0])
	}
	if rows[1].Status != string(internal.StatusResolved) || rows[1].Groups != 2 {
		t.Errorf("scan row lost fields: %+v", rows[1])
	}
}

func TestImportFromMail(t *testing.T) {
	db := openTestDB(t)

	raw := strings.Join([]string{
		"From: lieferant@example.com",
		"To: einkauf@example.com",
		"Subject: Zander Katalog",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"Anbei der aktuelle Katalog.",
		"--b1",
		`Content-Type: application/octet-stream; name="DATANORM.001"`,
		"Content-Transfer-Encoding: base64",
		`Content-Disposition: attachment; filename="DATANORM.001"`,
		"",
		"QTtOOzE7MDA7QWxwaGE7OzE7MTtTdGNrOzEwMDs7O1cK",
		"--b1",
		`Content-Type: application/pdf; name="preisliste.pdf"`,
		"Content-Transfer-Encoding: base64",
		`Content-Disposition: attachment; filename="preisliste.pdf"`,
		"",
		"JVBERi0=",
		"--b1--",
		"",
	}, "\r\n")

	res, err := db.ImportFromMail([]byte(raw), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Stored) != 1 || res.Stored[0].Name != "DATANORM.001" {
		t.Fatalf("stored = %+v", res.Stored)
	}
	if res.Stored[0].Comment != "Zander Katalog" {
		t.Errorf("comment = %q, want the subject", res.Stored[0].Comment)
	}
	if len(res.Ignored) != 1 || res.Ignored[0] != "preisliste.pdf" {
		t.Errorf("ignored = %v", res.Ignored)
	}

	files, err := db.CatalogFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !strings.HasPrefix(string(files[0].Data), "A;N;1;") {
		t.Fatalf("imported content wrong: %q", files[0].Data)
	}
}
