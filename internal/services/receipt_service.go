package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"order_studio/internal/models"
)

// ReceiptService derives downloadable artifacts from a finalized
// order. It never writes back to the ledger.
type ReceiptService interface {
	Receipt(order models.Order) string
	Archive(order models.Order) ([]byte, error)
}

type receiptService struct {
	filesDir string
	logger   *zap.Logger
}

func NewReceiptService(filesDir string, logger *zap.Logger) ReceiptService {
	return &receiptService{filesDir: filesDir, logger: logger}
}

// Receipt renders a plain-text receipt for printing or emailing.
func (s *receiptService) Receipt(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n", order.ID)
	fmt.Fprintf(&b, "Date: %s\n", order.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "%s\n", summarize(order.Details))
	if order.Details.Comments != "" {
		fmt.Fprintf(&b, "Notes: %s\n", order.Details.Comments)
	}
	if len(order.Details.Files) > 0 {
		b.WriteString("Files:\n")
		for _, f := range order.Details.Files {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	fmt.Fprintf(&b, "Status: %s / %s\n", order.Status, order.PaymentStatus)
	fmt.Fprintf(&b, "Total: ₹%.2f\n", order.Amount)
	return b.String()
}

// Archive bundles every file in the order's manifest into one zip.
// Files missing on disk are skipped and logged, not fatal: staff still
// get whatever is available.
func (s *receiptService) Archive(order models.Order) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	bundled := 0
	for _, name := range order.Details.Files {
		// manifest names are flat, never paths
		src := filepath.Join(s.filesDir, filepath.Base(name))
		f, err := os.Open(src)
		if err != nil {
			s.logger.Warn("archive skipping missing file",
				zap.Uint("order_id", order.ID), zap.String("file", name), zap.Error(err))
			continue
		}
		w, err := zw.Create(filepath.Base(name))
		if err == nil {
			_, err = io.Copy(w, f)
		}
		f.Close()
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to bundle %s: %w", name, err)
		}
		bundled++
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if bundled == 0 {
		return nil, fmt.Errorf("order %d has no files on disk", order.ID)
	}
	return buf.Bytes(), nil
}

// UploadName renames a customer upload so files on disk sort by order:
// "<LINE>_<CleanName>_<id><ext>".
func UploadName(line models.ProductLine, customerName string, orderID uint, originalName string) string {
	var clean strings.Builder
	for _, r := range customerName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			clean.WriteRune(r)
		}
	}
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s_%s_%d%s", strings.ToUpper(string(line)), clean.String(), orderID, ext)
}
