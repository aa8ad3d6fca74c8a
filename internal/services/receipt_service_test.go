package services

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"order_studio/internal/models"
)

func TestReceiptRendersOrder(t *testing.T) {
	svc := NewReceiptService(t.TempDir(), zap.NewNop())

	order := testOrder()
	order.CreatedAt = time.Date(2026, 8, 1, 10, 30, 0, 0, time.Local)
	order.Details.Comments = "spiral binding"
	order.Details.Files = []string{"PRINT_Asha_7.pdf"}

	receipt := svc.Receipt(order)
	assert.Contains(t, receipt, "Order #7")
	assert.Contains(t, receipt, "Customer: Asha")
	assert.Contains(t, receipt, "12 pages")
	assert.Contains(t, receipt, "spiral binding")
	assert.Contains(t, receipt, "PRINT_Asha_7.pdf")
	assert.Contains(t, receipt, "Total: ₹48.00")
}

func TestArchiveBundlesManifestFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "PRINT_Asha_7.pdf"), []byte("pdf bytes"), 0o644))
	svc := NewReceiptService(dir, zap.NewNop())

	order := testOrder()
	order.Details.Files = []string{"PRINT_Asha_7.pdf", "missing.png"}

	data, err := svc.Archive(order)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "PRINT_Asha_7.pdf", zr.File[0].Name)
}

func TestArchiveFailsWhenNothingOnDisk(t *testing.T) {
	svc := NewReceiptService(t.TempDir(), zap.NewNop())

	order := testOrder()
	order.Details.Files = []string{"missing.png"}
	_, err := svc.Archive(order)
	assert.Error(t, err)

	order.Details.Files = nil
	_, err = svc.Archive(order)
	assert.Error(t, err)
}

func TestUploadName(t *testing.T) {
	assert.Equal(t, "PRINT_Asha_12.pdf", UploadName(models.LinePrint, "Asha", 12, "my thesis.pdf"))
	assert.Equal(t, "CAKE_BinuJose_3.jpg", UploadName(models.LineCake, "Binu Jose!", 3, "ref image.jpg"))
	assert.Equal(t, "CAKE__9.png", UploadName(models.LineCake, "--", 9, "a.png"))
}
