package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateBrochure(data BrochureData) (string, error)
}

// BrochureGenerator — реализация
type BrochureGenerator struct {
	RootDir string // корень хранения, например "./uploads"
}

type BrochureData struct {
	LandID      int64
	Title       string
	Description string
	Price       float64
	SizeAcres   float64
	County      string
	SubCounty   string
	Status      string
	OwnerName   string
	OwnerPhone  string
	CreatedAt   time.Time
	Filename    string // имя файла (без путей); если пусто — сгенерируем
}

func NewBrochureGenerator(rootDir string) *BrochureGenerator {
	return &BrochureGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *BrochureGenerator) GenerateBrochure(data BrochureData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("land_%d_brochure.pdf", data.LandID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Land Listing #%d", data.LandID), false)
	pdf.SetAuthor("Ardhi", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "LAND LISTING", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("Ref ARD-%06d  listed  %s",
		data.LandID,
		data.CreatedAt.Format("02.01.2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Участок
	g.sectionTitle(pdf, "Parcel")
	g.kvLine(pdf, "Title", data.Title)
	location := data.County
	if data.SubCounty != "" {
		location += ", " + data.SubCounty
	}
	g.kvLine(pdf, "Location", location)
	g.kvLine(pdf, "Size", fmt.Sprintf("%.2f acres", data.SizeAcres))
	g.kvLine(pdf, "Price", fmt.Sprintf("KES %.2f", data.Price))
	g.kvLine(pdf, "Status", data.Status)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Описание
	if data.Description != "" {
		g.sectionTitle(pdf, "Description")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, data.Description, "", "L", false)
		pdf.Ln(2)
		g.hr(pdf)
	}

	// ===== Контакты
	g.sectionTitle(pdf, "Seller contact")
	g.kvLine(pdf, "Name", data.OwnerName)
	if data.OwnerPhone != "" {
		g.kvLine(pdf, "Phone", data.OwnerPhone)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	note := "Verify the title deed with the relevant land registry before any payment. " +
		"This brochure is generated from the listing data and is not a legal document."
	pdf.MultiCell(0, 5, note, "", "L", false)

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *BrochureGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *BrochureGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *BrochureGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *BrochureGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность: никакой вложенности
	return filepath.Join(g.RootDir, filename), nil
}
