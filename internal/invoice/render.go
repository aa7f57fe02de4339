package invoice

import (
	"bytes"
	"text/template"
)

// Fixed-layout plain text. The byte payload is what gets handed to the
// external PDF renderer, so the output must be deterministic for a given
// document.
const renderTemplate = `================================================================
                          INVOICE
================================================================
Invoice:    {{.InvoiceNumber}}
Issued:     {{.IssuedAt.Format "2006-01-02 15:04"}}
Order:      {{.OrderID}}
Status:     {{.OrderStatus}}

Deliver to:
  {{.Buyer.Street}}{{if .Buyer.Building}}, bygning {{.Buyer.Building}}{{end}}{{if .Buyer.Floor}}, {{.Buyer.Floor}}.{{end}}{{if .Buyer.Apartment}} {{.Buyer.Apartment}}{{end}}
  {{.Buyer.Postcode}} {{.Buyer.City}}

----------------------------------------------------------------
{{printf "%-30s %8s %6s %12s" "Item" "Qty" "Unit" "Total"}}
----------------------------------------------------------------
{{range .Lines -}}
{{printf "%-30.30s %8d %6s %12s" .ProductName .Quantity .Unit .LineTotal}}
{{end -}}
----------------------------------------------------------------
{{printf "%-46s %12s %s" "Subtotal" .Subtotal .Currency}}
{{printf "%-46s %12s %s" "Delivery fee" .DeliveryFee .Currency}}
{{printf "%-46s %12s %s" "Total" .Total .Currency}}
================================================================
`

var tmpl = template.Must(template.New("invoice").Parse(renderTemplate))

// Render produces the printable text for a document.
func Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
