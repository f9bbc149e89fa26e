package report

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Bar characters.
const (
	FillChar  = "="
	BlankChar = " "
)

// ErrPercentRange is returned when a percentage lies outside [0, 100].
var ErrPercentRange = errors.New("percent must be between 0 and 100")

// RenderBar returns a bar of exactly width characters with percent of it
// filled. The filled count is rounded half to even. A width of zero or less
// yields an empty bar.
func RenderBar(percent float64, width int) (string, error) {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return "", fmt.Errorf("%w: got %v", ErrPercentRange, percent)
	}

	if width <= 0 {
		return "", nil
	}

	filled := int(math.RoundToEven(percent * float64(width) / 100))

	return strings.Repeat(FillChar, filled) + strings.Repeat(BlankChar, width-filled), nil
}
