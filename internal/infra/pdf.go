package infra

// pdf.go — PDF generation using go-pdf/fpdf.
// Two documents come out of here: the ficha técnica card for a recipe and
// the caixa closing report delivered by email after every close.

import (
	"fmt"
	"os"
	"path/filepath"

	"donmenu/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateRecipeCardPDF renders an A5 ficha técnica for the given recipe.
// Returns the absolute path of the written file.
func GenerateRecipeCardPDF(recipe *model.Recipe, restaurantName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("ficha_%s.pdf", recipe.ID))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, restaurantName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Ficha Técnica", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, recipe.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("Rendimento: %s %s", recipe.YieldQuantity, recipe.YieldUnit), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.48 // ingredient
	col2 := contentW * 0.26 // quantity
	col3 := contentW * 0.26 // cost

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Ingrediente", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Quantidade", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Custo", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, line := range recipe.Ingredients {
		name := "?"
		if line.Ingredient != nil {
			name = line.Ingredient.Name
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%s %s", line.Quantity, line.Unit), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+line.Cost.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "Custo total", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+recipe.TotalCost.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 6, "Custo por porção", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+recipe.CostPerYield.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

// GenerateClosureReportPDF renders the closing report of a caixa session,
// entries included, for email delivery and archival.
func GenerateClosureReportPDF(session *model.CaixaSession, restaurantName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("fechamento_%s.pdf", session.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 9, restaurantName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Relatório de Fechamento de Caixa", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Abertura: "+session.OpenedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if session.ClosedAt != nil {
		pdf.CellFormat(contentW, 5, "Fechamento: "+session.ClosedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	col1 := contentW * 0.20 // kind
	col2 := contentW * 0.55 // description
	col3 := contentW * 0.25 // amount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Descrição", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Valor", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, e := range session.Entries {
		pdf.CellFormat(col1, 5, e.Kind, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, e.Description, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+e.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	row := func(label string, value *decimal.Decimal) {
		if value == nil {
			return
		}
		pdf.CellFormat(col1+col2, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, "R$ "+value.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	opening := session.OpeningAmount
	row("Valor de abertura", &opening)
	row("Valor esperado", session.ExpectedAmount)
	row("Valor declarado", session.DeclaredAmount)
	row("Diferença", session.Difference)

	if session.Note != nil && *session.Note != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 5, "Observação: "+*session.Note, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
