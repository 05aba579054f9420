package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Poppler extracts text by piping the document through poppler's pdftotext.
type Poppler struct {
	Bin string
}

func (p Poppler) Text(ctx context.Context, data []byte) (string, error) {
	cmd := exec.CommandContext(ctx, p.Bin, "-layout", "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	// pdftotext separates pages with form feeds.
	return string(bytes.ReplaceAll(output, []byte{'\f'}, []byte{'\n'})), nil
}
