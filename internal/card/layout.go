package card

import (
	"image"

	"golang.org/x/image/math/fixed"
)

// Logical card metrics; every value is multiplied by ScaleFactor before use.
const (
	CardWidth      = 600
	ScaleFactor    = 2
	padding        = 30
	headerHeight   = 30
	bodyLineHeight = 28
	footerHeight   = 20
	sectionSpacing = 20
	accentBarWidth = 5
	accentBarGap   = 10
	iconGap        = 8

	headerFontSize = 20
	bodyFontSize   = 18
	footerFontSize = 14
)

// Layout holds the pixel geometry of one card. It is derived from the text
// on every render and never cached.
type Layout struct {
	CanvasWidth      int
	CanvasHeight     int
	HeaderTop        int
	HeaderBaseline   int
	BodyTop          int
	BodyLineHeight   int
	WrappedLineCount int
	ContentX         int
	ContentWidth     int
	AccentBar        image.Rectangle
	FooterBaseline   int
	Lines            []string
}

// ContentWidth is the pixel width available to body text: the card minus
// both paddings and the accent bar gutter.
func ContentWidth() int {
	return (CardWidth - 2*padding - accentBarWidth - accentBarGap) * ScaleFactor
}

// CanvasHeight is the total height for a body of lineCount lines.
func CanvasHeight(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	logical := padding + headerHeight + sectionSpacing +
		lineCount*bodyLineHeight +
		sectionSpacing + footerHeight + padding
	return logical * ScaleFactor
}

// ComputeLayout wraps text with measure and places every card element.
// headerAscent and footerAscent convert the top of a text row into the
// baseline the font drawer expects.
func ComputeLayout(measure MeasureFunc, text string, maxLines int, headerAscent, footerAscent int) Layout {
	contentWidth := ContentWidth()
	lines := WrapText(measure, text, fixed.I(contentWidth), maxLines)

	s := ScaleFactor
	l := Layout{
		CanvasWidth:      CardWidth * s,
		CanvasHeight:     CanvasHeight(len(lines)),
		HeaderTop:        padding * s,
		BodyLineHeight:   bodyLineHeight * s,
		WrappedLineCount: len(lines),
		ContentX:         (padding + accentBarWidth + accentBarGap) * s,
		ContentWidth:     contentWidth,
		Lines:            lines,
	}
	l.HeaderBaseline = l.HeaderTop + headerAscent
	l.BodyTop = l.HeaderTop + (headerHeight+sectionSpacing)*s

	bodyHeight := l.WrappedLineCount * l.BodyLineHeight
	l.AccentBar = image.Rect(padding*s, l.BodyTop, (padding+accentBarWidth)*s, l.BodyTop+bodyHeight)

	footerTop := l.BodyTop + bodyHeight + sectionSpacing*s
	l.FooterBaseline = footerTop + footerAscent

	return l
}
