package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signintech/gopdf"
	"github.com/voterworks/backend/internal/domain"
)

const fontName = "dejavu"

// Generator renders completed voter registration forms. One Generator is safe
// to share; each Generate call builds a fresh document.
type Generator struct {
	outputDir string
	fontPath  string
}

func NewGenerator(outputDir, fontPath string) *Generator {
	return &Generator{
		outputDir: outputDir,
		fontPath:  fontPath,
	}
}

// Generate writes the registration form for one registrant and returns the
// path of the written file.
func (g *Generator) Generate(registrant *domain.Registrant, partner *domain.Partner) (string, error) {
	doc := &gopdf.GoPdf{}
	doc.Start(gopdf.Config{
		PageSize: *gopdf.PageSizeA4,
		Unit:     gopdf.Unit_PT,
	})

	if err := doc.AddTTFFont(fontName, g.fontPath); err != nil {
		return "", fmt.Errorf("add ttf font failed: %w", err)
	}

	doc.AddPage()

	if err := doc.SetFont(fontName, "", 16); err != nil {
		return "", fmt.Errorf("set font failed: %w", err)
	}
	writeLine(doc, 40, "Voter Registration Form")

	if err := doc.SetFont(fontName, "", 11); err != nil {
		return "", fmt.Errorf("set font failed: %w", err)
	}

	y := 80.0
	lines := []string{
		fmt.Sprintf("Submitted via: %s", partner.Name),
		fmt.Sprintf("Name: %s %s %s %s %s", registrant.NameTitle.String, registrant.FirstName.String,
			registrant.MiddleName.String, registrant.LastName.String, registrant.NameSuffix.String),
		fmt.Sprintf("Date of birth: %s", formatDate(registrant)),
		fmt.Sprintf("Home address: %s %s, %s %s", registrant.HomeAddress.String,
			registrant.HomeUnit.String, registrant.HomeCity.String, registrant.HomeZipCode.String),
		fmt.Sprintf("State ID number: %s", registrant.StateIDNumber.String),
		fmt.Sprintf("Party: %s", registrant.Party.String),
		fmt.Sprintf("Phone: %s (%s)", registrant.Phone.String, registrant.PhoneType.String),
		fmt.Sprintf("Email: %s", registrant.EmailAddress.String),
	}
	if registrant.HasMailingAddress {
		lines = append(lines, fmt.Sprintf("Mailing address: %s %s, %s %s",
			registrant.MailingAddress.String, registrant.MailingUnit.String,
			registrant.MailingCity.String, registrant.MailingZipCode.String))
	}
	for _, line := range lines {
		doc.SetXY(40, y)
		if err := doc.Cell(nil, line); err != nil {
			return "", fmt.Errorf("write pdf cell failed: %w", err)
		}
		y += 20
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create pdf output dir failed: %w", err)
	}

	path := filepath.Join(g.outputDir, registrant.ID.String()+".pdf")
	if err := doc.WritePdf(path); err != nil {
		return "", fmt.Errorf("write pdf failed: %w", err)
	}
	return path, nil
}

func writeLine(doc *gopdf.GoPdf, y float64, text string) {
	doc.SetXY(40, y)
	_ = doc.Cell(nil, text)
}

func formatDate(registrant *domain.Registrant) string {
	if !registrant.DateOfBirth.Valid {
		return ""
	}
	return registrant.DateOfBirth.Time.Format("2006-01-02")
}
