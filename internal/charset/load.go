package charset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadRunes reads every drillable character from the provided file path.
// Whitespace and control characters are ignored and repeats are collapsed.
func LoadRunes(path string) ([]rune, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only charset.
			_ = cerr
		}
	}()

	var runes []rune
	reader := bufio.NewReader(file)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		runes = append(runes, r)
	}
	runes = FilterRunes(runes)
	if len(runes) == 0 {
		return nil, fmt.Errorf("charset %s is empty", path)
	}
	return runes, nil
}
