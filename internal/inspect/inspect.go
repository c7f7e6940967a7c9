package inspect

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// AcceptedExtensions is the client-side input filter for uploads. Not a
// security boundary; the extraction service does its own checks.
var AcceptedExtensions = []string{".txt", ".docx", ".xlsx", ".pdf"}

var zipSignature = []byte{'P', 'K', 0x03, 0x04}

// CheckFile rejects documents the extraction service will not accept:
// unknown extensions and files whose content doesn't match what the
// extension promises. Catching these locally avoids a pointless upload
// against a backend that may take a minute to warm up.
func CheckFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !accepted(ext) {
		return fmt.Errorf("unsupported file type %q (accepted: %s)", ext, strings.Join(AcceptedExtensions, ", "))
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(blob) == 0 {
		return fmt.Errorf("%s is empty", filepath.Base(path))
	}

	switch ext {
	case ".pdf":
		if _, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob))); err != nil {
			return fmt.Errorf("%s is not a readable PDF", filepath.Base(path))
		}
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(blob))
		if err != nil {
			return fmt.Errorf("%s is not a readable workbook", filepath.Base(path))
		}
		_ = f.Close()
	case ".docx":
		if !bytes.HasPrefix(blob, zipSignature) {
			return fmt.Errorf("%s is not a valid document", filepath.Base(path))
		}
	case ".txt":
		if !utf8.Valid(blob) {
			return fmt.Errorf("%s is not valid text", filepath.Base(path))
		}
	}
	return nil
}

func accepted(ext string) bool {
	for _, e := range AcceptedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
