package quotation

import (
	"time"

	"github.com/google/uuid"
)

// Item is one line of the quotation table. LineTotal is always derived,
// never stored.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
}

func (it Item) LineTotal() float64 {
	return it.Quantity * it.UnitCost
}

// Document is the aggregate root. Its JSON form doubles as the flat,
// versionless interchange record written by export and accepted by import.
type Document struct {
	RecipientName    string `json:"recipientName"`
	RecipientCompany string `json:"recipientCompany"`
	RecipientAddress string `json:"recipientAddress"`
	Subject          string `json:"subject"`
	Date             string `json:"date"`

	Items []Item `json:"items"`
	Notes string `json:"notes"`

	VATRate float64 `json:"vatRate"`
	TaxRate float64 `json:"taxRate"`

	HideRecipient bool `json:"hideRecipient"`

	LogoImage      string  `json:"logoImage,omitempty"`
	LogoWidth      float64 `json:"logoWidth"`
	WatermarkImage string  `json:"watermarkImage,omitempty"`
	WatermarkWidth float64 `json:"watermarkWidth"`
	WatermarkY     float64 `json:"watermarkY"`

	SignatureImage   string  `json:"signatureImage,omitempty"`
	SignatureSpacing int     `json:"signatureSpacing"`
	SignatureScale   float64 `json:"signatureScale"`
	ThankYouSize     float64 `json:"thankYouSize"`

	// Complementary box widths, always summing to 100. Mutate only through
	// SetNotesBoxWidth / SetTotalBoxWidth.
	NotesBoxWidth int `json:"notesBoxWidth"`
	TotalBoxWidth int `json:"totalBoxWidth"`
}

// Default returns the built-in template a session starts from.
func Default() Document {
	return Document{
		Subject:          "Quotation",
		Date:             time.Now().Format("02 Jan 2006"),
		Items:            []Item{},
		LogoWidth:        40,
		WatermarkWidth:   120,
		WatermarkY:       90,
		SignatureSpacing: 0,
		SignatureScale:   100,
		ThankYouSize:     11,
		NotesBoxWidth:    60,
		TotalBoxWidth:    40,
	}
}

// SetNotesBoxWidth writes both complementary widths in one step so the
// invariant notes+total == 100 can never be observed broken.
func (d *Document) SetNotesBoxWidth(w int) {
	if w < 0 {
		w = 0
	}
	if w > 100 {
		w = 100
	}
	d.NotesBoxWidth = w
	d.TotalBoxWidth = 100 - w
}

func (d *Document) SetTotalBoxWidth(w int) {
	if w < 0 {
		w = 0
	}
	if w > 100 {
		w = 100
	}
	d.TotalBoxWidth = w
	d.NotesBoxWidth = 100 - w
}

// NormalizeWidths repairs the complementary-width pair after an import or
// merge, trusting the notes width as the authoritative half.
func (d *Document) NormalizeWidths() {
	d.SetNotesBoxWidth(d.NotesBoxWidth)
}

// Reset restores the default template. With keepBranding the logo, watermark
// and signature assets (and their size controls) survive the reset.
func (d *Document) Reset(keepBranding bool) {
	next := Default()
	if keepBranding {
		next.LogoImage = d.LogoImage
		next.LogoWidth = d.LogoWidth
		next.WatermarkImage = d.WatermarkImage
		next.WatermarkWidth = d.WatermarkWidth
		next.WatermarkY = d.WatermarkY
		next.SignatureImage = d.SignatureImage
		next.SignatureScale = d.SignatureScale
	}
	*d = next
}

// EnsureItemIDs assigns fresh IDs to items that arrived without one
// (imported files, AI fill responses).
func (d *Document) EnsureItemIDs() {
	for i := range d.Items {
		if d.Items[i].ID == "" {
			d.Items[i].ID = uuid.NewString()
		}
	}
}

// StripImages clears the heavy base64 asset fields. Used by the draft saver
// when the full record does not fit the store.
func (d *Document) StripImages() {
	d.LogoImage = ""
	d.WatermarkImage = ""
	d.SignatureImage = ""
}
