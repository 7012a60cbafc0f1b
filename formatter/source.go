package formatter

import (
	"os"
	"strings"
)

// SourceCode holds the lines of a file for issue snippets.
type SourceCode struct {
	Lines []string
}

func NewSourceCode(src []byte) *SourceCode {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return &SourceCode{}
	}
	return &SourceCode{Lines: strings.Split(text, "\n")}
}

func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(content), nil
}
