package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/portrait-next/internal/constants"
	"github.com/portrait-next/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// 单据固定文案
const (
	shippingFromBlock = "AG Fulfillment Center\n123 West Road\nGreater London, LD3 3RT\nUnited Kingdom\n01202 364824"
	invoiceAddress    = "227 Cobblestone Road, Bedrock"
	invoiceContact    = "01202 364824  https://classfundraising.co.uk/  Email@Emailhere.com"
	invoiceFooter     = "Payment details: ACC:123000005 IBAN:US100000060345 SWIFT:BOA000"
	packingSlipTitle  = "Class Fundraising - Self Portrait Project Art Pack"
)

// DocumentService 单据生成服务（全部内存生成，不落盘）
type DocumentService struct{}

// NewDocumentService 创建单据服务
func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

func newDoc() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return pdf
}

func render(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Checklist 套件装箱检查单
func (s *DocumentService) Checklist(order *models.Order) ([]byte, error) {
	pdf := newDoc()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Kit Checklist", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order ID: %d", order.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("For: %s %s", order.FirstName, order.LastName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("School: %s", order.SchoolName), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	items := []string{
		fmt.Sprintf("Templates - Quantity: %d", order.ArtPacks),
		fmt.Sprintf("Pens - Quantity: %d", order.ArtPacks),
		"'What to do next' Paper",
	}
	if order.FreeSample {
		items = append(items, "Free Sample")
	}
	items = append(items,
		"DPD Paper Work",
		fmt.Sprintf("Address: %s, %s, %s", order.AddressLine1, order.City, order.Postcode),
	)

	pdf.SetFont("Arial", "", 13)
	for _, item := range items {
		pdf.CellFormat(10, 10, "[  ]", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, item, "", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "ONCE CHECKED YOU CAN BIN THIS PIECE OF PAPER", "", 1, "C", false, 0, "")

	return render(pdf)
}

// NextSteps 学校下一步指引（含门户登录凭据）
func (s *DocumentService) NextSteps(order *models.Order) ([]byte, error) {
	pdf := newDoc()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 14, "Next Steps", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	username := order.PortalUsername
	if username == "" {
		username = "user"
	}
	password := order.PortalPassword
	if password == "" {
		password = "1234567890"
	}

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 7, "Track your order and confirm your portrait quantities on the school portal.", "", "L", false)
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Portal Username: %s", username), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Portal Password: %s", password), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "How to Return Items", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	steps := []string{
		"Collect all completed portrait templates from your classes.",
		"Place the templates and pens back into the kit box.",
		"Put the enclosed paperwork on top of the templates.",
		"Attach the prepaid DPD label to the outside of the box.",
		"Hand the box to the DPD driver on the arranged collection day.",
	}
	for i, step := range steps {
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, step), "", "L", false)
	}

	return render(pdf)
}

// PackingSlip 装箱单
func (s *DocumentService) PackingSlip(order *models.Order) ([]byte, error) {
	pdf := newDoc()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 9, packingSlipTitle, "", "C", false)
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Order ID: %d    Date: %s", order.ID, time.Now().Format("02/01/2006")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// 寄出方与收件方并排
	pdf.SetFont("Arial", "B", 12)
	startY := pdf.GetY()
	pdf.CellFormat(95, 8, "Shipping From", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(90, 6, shippingFromBlock, "", "L", false)
	endY := pdf.GetY()

	shipTo := fmt.Sprintf("%s %s\n%s", order.FirstName, order.LastName, order.SchoolName)
	shipTo += fmt.Sprintf("\n%s", order.AddressLine1)
	if order.AddressLine2 != "" {
		shipTo += fmt.Sprintf("\n%s", order.AddressLine2)
	}
	shipTo += fmt.Sprintf("\n%s, %s %s", order.City, order.County, order.Postcode)

	pdf.SetXY(110, startY)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Shipping To", "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(90, 6, shipTo, "", "L", false)
	if pdf.GetY() < endY {
		pdf.SetY(endY)
	}
	pdf.SetX(10)
	pdf.Ln(8)

	// 套件物品表格
	type kitItem struct {
		name string
		desc string
		qty  int
	}
	items := []kitItem{
		{"Self Portrait Templates", "A4 Paper Document", order.ArtPacks},
		{"Pens", "Blue Ball Point Pens", order.ArtPacks},
		{"What's Next", "A4 Paper Document", 1},
	}
	if order.FreeSample {
		items = append(items, kitItem{"Free Sample", "Finished Product Sample", 1})
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Quantity", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, item := range items {
		pdf.CellFormat(70, 8, item.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 8, item.desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, strconv.Itoa(item.qty), "1", 1, "C", false, 0, "")
	}

	if order.DeliveryInstructions != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Delivery Instructions", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, order.DeliveryInstructions, "", "L", false)
	}

	return render(pdf)
}

// Invoice 发票
func (s *DocumentService) Invoice(order *models.Order, invoice *models.Invoice) ([]byte, error) {
	pdf := newDoc()

	issueDate := time.Now()
	dueDate := issueDate.AddDate(0, 0, 21)
	lineTotal := float64(order.ArtPacks) * 100 * 1.05

	// 公司抬头（右侧）
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, invoiceAddress, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, invoiceContact, "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Invoice # %d", invoice.ID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(60, 7, fmt.Sprintf("Issue Date: %s", issueDate.Format("01/02/2006")), "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Net: 21", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Due Date: %s", dueDate.Format("01/02/2006")), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: $%.2f", lineTotal), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Bill to:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	billTo := order.SchoolName
	if billTo == "" {
		billTo = fmt.Sprintf("%s %s", order.FirstName, order.LastName)
	}
	pdf.CellFormat(0, 6, billTo, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// 条目表格
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(65, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Tax", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(15, 8, "1", "1", 0, "C", false, 0, "")
	pdf.CellFormat(65, 8, "Art Pack", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, strconv.Itoa(order.ArtPacks), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "$100.00", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 8, "5%", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("$%.2f", lineTotal), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	// 汇总表格
	subtotal := float64(order.ArtPacks) * 100
	tax := subtotal * 0.05
	rows := [][2]string{
		{"Subtotal", fmt.Sprintf("$%.2f", subtotal)},
		{"Tax (5%)", fmt.Sprintf("$%.2f", tax)},
		{"Total", fmt.Sprintf("$%.2f", lineTotal)},
		{"Paid", "$0.00"},
		{"Amount Due", fmt.Sprintf("$%.2f", lineTotal)},
	}
	for _, row := range rows {
		pdf.CellFormat(120, 7, "", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(35, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(35, 7, row[1], "1", 1, "R", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 6, invoiceFooter, "", 1, "L", false, 0, "")

	return render(pdf)
}

// FinalPackageChecklist 成品包装检查单（数量确认后才可生成）
func (s *DocumentService) FinalPackageChecklist(order *models.Order) ([]byte, error) {
	if order.Quantities == "" || order.Quantities == constants.QuantitiesUnconfirmed {
		return nil, ErrQuantitiesUnconfirmed
	}

	pdf := newDoc()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Final Package Checklist", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order ID: %d", order.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("School: %s", order.SchoolName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Contact: %s %s", order.FirstName, order.LastName), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, "Confirmed Quantities", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, line := range quantityLines(order.Quantities) {
		pdf.CellFormat(10, 9, "[  ]", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 9, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 9, "Remember to enclose the invoice with the package.", "", 1, "L", false, 0, "")

	return render(pdf)
}

// quantityLines 将数量 JSON 展开为逐行文本；解析失败按空映射处理
func quantityLines(quantities string) []string {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(quantities), &parsed); err != nil {
		return nil
	}

	keys := make([]string, 0, len(parsed))
	for k := range parsed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, parsed[k]))
	}
	return lines
}
