package app

import (
	"log"
	"sync"
	"unicode/utf8"

	"github.com/camille/redite/internal/ports"
)

// HighlightView owns the host-side highlight state for the current
// document: which spans are marked and which lemma has focus. It is the
// sole mutator of that state; callers go through its methods.
type HighlightView struct {
	mu      sync.Mutex
	logger  *log.Logger
	docLen  int // rune length of the current document
	marks   []ports.Highlight
	focused string
}

// NewHighlightView creates an empty view.
func NewHighlightView(logger *log.Logger) *HighlightView {
	return &HighlightView{logger: logger}
}

// SetDocument binds the view to a new document, clearing marks and focus.
func (v *HighlightView) SetDocument(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.docLen = utf8.RuneCountInString(text)
	v.marks = nil
	v.focused = ""
}

// ApplyHighlights applies a result's highlights to the current document.
// A highlight whose span doesn't fit the document (stale offsets) is
// logged and skipped; the rest still apply. Returns applied and skipped
// counts. Prior marks are replaced only on a successful result delivery;
// callers must not invoke this on engine failure.
func (v *HighlightView) ApplyHighlights(result ports.Result) (applied, skipped int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.marks = v.marks[:0]
	for _, h := range result.Highlights {
		if h.Start < 0 || h.End > v.docLen || h.Start >= h.End {
			skipped++
			v.logger.Printf("highlight skipped: span [%d,%d) outside document of %d runes (lemma %q)",
				h.Start, h.End, v.docLen, h.Lemma)
			continue
		}
		v.marks = append(v.marks, h)
		applied++
	}
	return applied, skipped
}

// FocusLemma selects one lemma for emphasis.
func (v *HighlightView) FocusLemma(lemma string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused = lemma
}

// ClearFocus removes the lemma selection.
func (v *HighlightView) ClearFocus() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused = ""
}

// Focused returns the currently focused lemma, empty if none.
func (v *HighlightView) Focused() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focused
}

// Marks returns a copy of the applied highlights.
func (v *HighlightView) Marks() []ports.Highlight {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]ports.Highlight, len(v.marks))
	copy(out, v.marks)
	return out
}
