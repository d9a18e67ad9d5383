package dump

import (
	"fmt"
	"strconv"
	"strings"

	"stylecascade/style"
)

// formatLength renders millipoints as points, "12pt" or "10.5pt".
func formatLength(v int32) string {
	return strconv.FormatFloat(float64(v)/1000, 'f', -1, 64) + "pt"
}

func formatLineHeight(h style.LineHeight) string {
	if h.Relative {
		return strconv.FormatFloat(float64(h.Height)/100, 'f', -1, 64) + "%"
	}
	return formatLength(h.Height)
}

// formatBorder uses CSS order: top, trailing, bottom, leading.
func formatBorder(b style.BorderThickness) string {
	return strings.Join([]string{
		formatLength(b.Top), formatLength(b.Trailing), formatLength(b.Bottom), formatLength(b.Leading),
	}, " ")
}

func formatBullet(b style.BulletInfo) string {
	if !b.Scheme.IsNumbered() {
		return b.Scheme.String()
	}
	return fmt.Sprintf("%s start=%d before=%q after=%q", b.Scheme, b.Start, b.TextBefore, b.TextAfter)
}
