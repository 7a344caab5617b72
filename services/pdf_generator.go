package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"society-intake-api/models"
	"society-intake-api/utils"

	"github.com/jung-kurt/gofpdf"
)

// PDFGenerator renders an application into the society's letter layout.
type PDFGenerator struct {
	UploadRoot string
}

func NewPDFGenerator(uploadRoot string) *PDFGenerator {
	return &PDFGenerator{UploadRoot: uploadRoot}
}

// GenerateFile renders the application letter to the given path.
func (g *PDFGenerator) GenerateFile(app *models.Application, outputPath string) error {
	pdf := g.build(app)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render application letter: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outputPath)
}

// GenerateBytes renders the application letter into a byte buffer, e.g.
// for an email attachment. GenerateFile and GenerateBytes share the same
// build path so both produce an identical document.
func (g *PDFGenerator) GenerateBytes(app *models.Application) ([]byte, error) {
	pdf := g.build(app)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render application letter: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) build(app *models.Application) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	g.addHeader(pdf, app)
	g.addPhoto(pdf, app)
	g.addBody(pdf, app)
	g.addSignature(pdf, app)

	return pdf
}

func (g *PDFGenerator) categoryName(app *models.Application) string {
	if app.Category.Name != "" {
		return app.Category.Name
	}
	return app.CategoryName
}

func (g *PDFGenerator) addHeader(pdf *gofpdf.Fpdf, app *models.Application) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, "To,\nThe Chairman,\nState Bangladesh Society", "", "C", false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, "Subject: Application for "+g.categoryName(app), "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	g.addRow(pdf, "Date:", utils.FormatLongDate(time.Now()), 40)
	g.addRow(pdf, "Reference No:", app.ReferenceNumber, 40)
	pdf.Ln(6)
}

// addPhoto places the applicant photo right-aligned. A missing or unset
// photo is skipped without error.
func (g *PDFGenerator) addPhoto(pdf *gofpdf.Fpdf, app *models.Application) {
	if app.PhotoPath == "" {
		return
	}
	fullPath := filepath.Join(g.UploadRoot, app.PhotoPath)
	if _, err := os.Stat(fullPath); err != nil {
		return
	}

	pageWidth, _ := pdf.GetPageSize()
	_, _, right, _ := pdf.GetMargins()
	x := pageWidth - right - 38
	y := pdf.GetY()
	pdf.ImageOptions(fullPath, x, y, 38, 50, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	pdf.SetY(y + 54)
}

func (g *PDFGenerator) addBody(pdf *gofpdf.Fpdf, app *models.Application) {
	category := g.categoryName(app)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "Respected Sir/Madam,", "", "L", false)
	pdf.Ln(3)

	intro := fmt.Sprintf("I am writing to respectfully submit my application for the %s "+
		"under your esteemed organization. I believe that this project will significantly benefit "+
		"my family and community, and I am committed to utilizing the assistance effectively.", category)
	pdf.MultiCell(0, 6, intro, "", "L", false)
	pdf.Ln(5)

	g.addSection(pdf, "Personal Information:", [][2]string{
		{"Full Name:", app.FullName},
		{"Father's Name:", app.FatherName},
		{"Mother's Name:", app.MotherName},
		{"National ID Number:", app.NIDNumber},
		{"Date of Birth:", utils.FormatLongDate(app.DateOfBirth)},
		{"Occupation:", app.Occupation},
	})

	g.addSection(pdf, "Address Information:", [][2]string{
		{"Village:", app.Village},
		{"Sub-district (Upazila):", app.Upazila},
		{"District:", app.District},
		{"Division:", app.Division},
	})

	g.addSection(pdf, "Family Information:", [][2]string{
		{"Number of Family Members:", fmt.Sprintf("%d", app.FamilyMembersCount)},
		{"Monthly Family Income:", utils.FormatCurrency(app.MonthlyIncome)},
		{"Main Earning Member's Occupation:", app.MainEarnerOccupation},
	})

	g.addSection(pdf, "Contact Information:", [][2]string{
		{"Email Address:", app.Email},
		{"Mobile Number:", app.MobileNumber},
	})

	closing := "I humbly request you to consider my application favorably and approve my request " +
		"for the above-mentioned project. I assure you that I will utilize the assistance properly " +
		"and follow all the guidelines provided by your organization. I am ready to provide any " +
		"additional information or documentation if required."
	pdf.MultiCell(0, 6, closing, "", "L", false)
	pdf.Ln(4)
	pdf.MultiCell(0, 6, "Thank you for your kind consideration.", "", "L", false)
	pdf.Ln(10)
}

func (g *PDFGenerator) addSection(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(0, 6, title, "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		g.addRow(pdf, row[0], row[1], 65)
	}
	pdf.Ln(5)
}

func (g *PDFGenerator) addRow(pdf *gofpdf.Fpdf, label, value string, labelWidth float64) {
	pdf.CellFormat(labelWidth, 6, label, "", 0, "L", false, 0, "")
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func (g *PDFGenerator) addSignature(pdf *gofpdf.Fpdf, app *models.Application) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "Yours sincerely,", "", "L", false)
	pdf.Ln(4)

	if app.SignaturePath != "" {
		fullPath := filepath.Join(g.UploadRoot, app.SignaturePath)
		if _, err := os.Stat(fullPath); err == nil {
			y := pdf.GetY()
			pdf.ImageOptions(fullPath, pdf.GetX(), y, 50, 25, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.SetY(y + 28)
		}
	}

	pdf.MultiCell(0, 6, app.FullName, "", "L", false)
	pdf.MultiCell(0, 6, "Reference: "+app.ReferenceNumber, "", "L", false)
}
