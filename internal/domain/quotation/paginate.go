package quotation

import "fmt"

type PageKind string

const (
	PageFirst      PageKind = "first"
	PageStandard   PageKind = "standard"
	PageFooterOnly PageKind = "footer-only"
)

// Page describes one output page: its kind, its slice of the item list and
// its position in the render sequence. Pages are recomputed on every render
// and never persisted.
type Page struct {
	Kind  PageKind
	Items []Item
	Index int
}

// Layout holds the allocator's tuning knobs. The chunk caps split the item
// list into pages; the fit bases answer the separate question of how many
// items may share a page with the footer. The two are configured
// independently: a full page of items with no footer is fine, but a page
// also carrying the footer needs significant spare room.
type Layout struct {
	// Chunking caps.
	ItemsPerFirstPage int
	ItemsPerPage      int

	// Footer fit thresholds, before dynamic adjustment. Each must not
	// exceed its chunk cap.
	FirstPageFit    int
	StandardPageFit int

	// One item of fit capacity is lost per NotesPenaltyChars characters of
	// notes text, and gained per SpacingBonusStep units of the signature
	// spacing control. Zero disables the adjustment.
	NotesPenaltyChars int
	SpacingBonusStep  int
}

func DefaultLayout() Layout {
	return Layout{
		ItemsPerFirstPage: 8,
		ItemsPerPage:      12,
		FirstPageFit:      8,
		StandardPageFit:   8,
		NotesPenaltyChars: 50,
		SpacingBonusStep:  25,
	}
}

func (l Layout) Validate() error {
	if l.ItemsPerFirstPage < 1 || l.ItemsPerPage < 1 {
		return fmt.Errorf("layout: chunk caps must be at least 1 (first=%d, page=%d)",
			l.ItemsPerFirstPage, l.ItemsPerPage)
	}
	if l.FirstPageFit > l.ItemsPerFirstPage {
		return fmt.Errorf("layout: first-page fit %d exceeds chunk cap %d",
			l.FirstPageFit, l.ItemsPerFirstPage)
	}
	if l.StandardPageFit > l.ItemsPerPage {
		return fmt.Errorf("layout: standard-page fit %d exceeds chunk cap %d",
			l.StandardPageFit, l.ItemsPerPage)
	}
	if l.FirstPageFit < 0 || l.StandardPageFit < 0 {
		return fmt.Errorf("layout: fit thresholds must not be negative")
	}
	return nil
}

// StartOffset is the global serial number base for the page at index.
// Numbering is derived from the chunk caps alone so it stays contiguous
// regardless of how the footer was placed.
func (l Layout) StartOffset(pageIndex int) int {
	if pageIndex == 0 {
		return 0
	}
	return l.ItemsPerFirstPage + (pageIndex-1)*l.ItemsPerPage
}

// fitCapacity is the adjusted item count that may coexist with the footer on
// a page of the given kind. Longer notes shrink it; a higher signature
// spacing setting grows it. Clamped to [0, chunk cap].
func (l Layout) fitCapacity(kind PageKind, notesLen, spacing int) int {
	base, chunkCap := l.StandardPageFit, l.ItemsPerPage
	if kind == PageFirst {
		base, chunkCap = l.FirstPageFit, l.ItemsPerFirstPage
	}

	c := base
	if l.NotesPenaltyChars > 0 {
		c -= notesLen / l.NotesPenaltyChars
	}
	if l.SpacingBonusStep > 0 {
		c += spacing / l.SpacingBonusStep
	}

	if c < 0 {
		c = 0
	}
	if c > chunkCap {
		c = chunkCap
	}
	return c
}

// Paginate splits items into page descriptors. The first chunk takes up to
// ItemsPerFirstPage items, every following chunk up to ItemsPerPage. Only
// the last chunk is then inspected: if its item count strictly exceeds the
// fit capacity for its kind, a footer-only page is appended so the footer
// never collides with the table. Ties fit; an empty item list still yields
// one first page so the footer always has somewhere to render.
func Paginate(items []Item, l Layout, notesLen, spacing int) []Page {
	var pages []Page

	first := l.ItemsPerFirstPage
	if first > len(items) {
		first = len(items)
	}
	pages = append(pages, Page{Kind: PageFirst, Items: items[:first], Index: 0})

	for rest := items[first:]; len(rest) > 0; {
		n := l.ItemsPerPage
		if n > len(rest) {
			n = len(rest)
		}
		pages = append(pages, Page{Kind: PageStandard, Items: rest[:n], Index: len(pages)})
		rest = rest[n:]
	}

	last := pages[len(pages)-1]
	if len(last.Items) > l.fitCapacity(last.Kind, notesLen, spacing) {
		pages = append(pages, Page{Kind: PageFooterOnly, Index: len(pages)})
	}
	return pages
}
