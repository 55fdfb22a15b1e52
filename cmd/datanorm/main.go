package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"datanorm/internal"
	"datanorm/internal/config"
	"datanorm/internal/datanorm"
	"datanorm/internal/resolver"
	"datanorm/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath, cfg.RawFileDir)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "catalog:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "path to a DATANORM file")
		comment := fs.String("comment", "", "supplier comment; equal comments form one supplier group")
		name := fs.String("name", "", "stored attachment name (defaults to the file name)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" || strings.TrimSpace(*comment) == "" {
			must(fmt.Errorf("--file and --comment are required"))
		}
		blob, err := os.ReadFile(*file)
		must(err)
		storedName := strings.TrimSpace(*name)
		if storedName == "" {
			storedName = filepath.Base(*file)
		}
		if kind := datanorm.DetectKind(storedName); kind == datanorm.KindUnknown {
			must(fmt.Errorf("%s is not a recognized DATANORM file name", storedName))
		}
		row, err := db.AddAttachment(storedName, *comment, blob)
		must(err)
		fmt.Printf("stored %s (%s) comment=%q hash=%s\n", row.Name, datanorm.DetectKind(row.Name), row.Comment, row.Hash[:12])
	case "catalog:import-mail":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		eml := fs.String("eml", "", "path to a raw mail message")
		comment := fs.String("comment", "", "override supplier comment (defaults to the subject)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*eml) == "" {
			must(fmt.Errorf("--eml is required"))
		}
		raw, err := os.ReadFile(*eml)
		must(err)
		res, err := db.ImportFromMail(raw, *comment)
		must(err)
		fmt.Printf("mail import done stored=%d ignored=%d\n", len(res.Stored), len(res.Ignored))
		for _, row := range res.Stored {
			fmt.Printf("  + %s comment=%q\n", row.Name, row.Comment)
		}
		for _, name := range res.Ignored {
			fmt.Printf("  - %s (not a DATANORM file)\n", name)
		}
	case "catalog:remove":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "stored attachment name")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*name) == "" {
			must(fmt.Errorf("--name is required"))
		}
		must(db.RemoveAttachment(*name))
		fmt.Printf("removed %s\n", *name)
	case "catalog:list":
		rows, err := db.ListAttachments()
		must(err)
		if len(rows) == 0 {
			fmt.Println("no catalog files stored")
			return
		}
		for _, row := range rows {
			fmt.Printf("%-24s %-14s comment=%q hash=%s\n", row.Name, datanorm.DetectKind(row.Name), row.Comment, row.Hash[:12])
		}
	case "scan":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		code := fs.String("code", "", "scanned barcode")
		out := fs.String("out", "", "explicit xlsx report path")
		export := fs.Bool("export", false, "write the xlsx report to OUTPUT_DIR")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*code) == "" {
			must(fmt.Errorf("--code is required"))
		}

		r := resolver.New(cfg, db)
		res, err := r.Resolve(*code)
		must(err)
		must(db.InsertScan(res))
		printResolution(res)

		path := strings.TrimSpace(*out)
		if path == "" && *export {
			path = filepath.Join(cfg.OutputDir, fmt.Sprintf("scan_%s.xlsx", *code))
		}
		if path != "" {
			must(resolver.ExportResolutionToXLSX(res, path))
			fmt.Printf("report written to %s\n", path)
		}
	case "scan:history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", cfg.ScanHistoryLimit, "max rows")
		_ = fs.Parse(os.Args[2:])
		rows, err := db.ListScans(*limit)
		must(err)
		for _, row := range rows {
			fmt.Printf("%s  %-13s %-10s groups=%d malformed=%d\n", row.CreatedAt, row.Code, row.Status, row.Groups, row.MalformedLines)
		}
	case "profiles":
		for _, name := range datanorm.ProfileNames() {
			marker := " "
			if name == cfg.DefaultProfile {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func printResolution(res internal.Resolution) {
	fmt.Printf("code=%s status=%s groups=%d malformed=%d\n", res.Code, res.Status, res.GroupsConsulted, res.MalformedLines)
	if res.Part != nil {
		fmt.Printf("part: %s [%s]\n", res.Part.Name, strings.Join(res.Part.CategoryPath, "/"))
	}
	if res.Manufacturer != nil && res.ManufacturerPart != nil {
		fmt.Printf("manufacturer: %s mpn=%s\n", res.Manufacturer.Name, res.ManufacturerPart.MPN)
	}
	for _, sp := range res.SupplierParts {
		price := "-"
		if sp.Price != nil {
			price = fmt.Sprintf("%.2f %s", *sp.Price, sp.Currency)
		}
		fmt.Printf("supplier: %s sku=%s price=%s unit=%s\n", sp.SupplierName, sp.SKU, price, sp.Unit)
	}
	for _, amb := range res.Ambiguous {
		fmt.Printf("ambiguous in %q: %s -> %s\n", amb.Comment, amb.EAN, strings.Join(amb.ArticleNumbers, ", "))
	}
}

func usage() {
	fmt.Println("usage: datanorm <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:add         --file=DATANORM.001 --comment=\"Zander\" [--name=...]")
	fmt.Println("  catalog:import-mail --eml=message.eml [--comment=...]")
	fmt.Println("  catalog:remove      --name=DATANORM.001")
	fmt.Println("  catalog:list")
	fmt.Println("  scan                --code=4006381333931 [--export] [--out=./out/report.xlsx]")
	fmt.Println("  scan:history        [--limit=20]")
	fmt.Println("  profiles")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
