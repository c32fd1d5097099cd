package convert

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/a3tai/pdf-records/internal/pdf"
	"github.com/a3tai/pdf-records/internal/pdf/pdftest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ConvertFileLayouts(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pages := [][]string{
		{"EXTRATO DE DEPOSITOS JUDICIAIS", "Pagina 1"},
		{lineWithoutOrder, "Total 1.500,00"},
		{"Pagina 3", lineWithOrder, "rodape"},
	}

	for _, layout := range pdftest.Layouts {
		t.Run(layout.String(), func(t *testing.T) {
			src := pdftest.WriteFileWithLayout(t, t.TempDir(), "extrato.pdf", pages, layout)

			scratch, err := pdf.NewScratch(filepath.Join(t.TempDir(), "temp_pdfs"))
			require.NoError(t, err)
			svc := NewService(Options{
				Scratch:   scratch,
				Reader:    pdf.NewDefaultChunkedReader(zerolog.Nop()),
				BatchSize: 2,
			})

			res, err := svc.ConvertFile(context.Background(), src, 0)
			require.NoError(t, err)
			assert.Equal(t, 3, res.Pages)
			assert.Equal(t, 2, res.Records)
			assert.Equal(t, expectedTable, unzipTable(t, res.Archive))
		})
	}
}
