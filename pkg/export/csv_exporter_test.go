package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Estudiante", "Curso"},
		Rows: []map[string]string{
			{"Estudiante": "Ana Soto", "Curso": "MAT - Matemática"},
			{"Estudiante": "Jorge Huamán"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Estudiante,Curso\nAna Soto,MAT - Matemática\nJorge Huamán,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	data := Dataset{
		Headers: []string{"Estudiante", "Curso"},
		Rows: []map[string]string{
			{"Estudiante": "Ana Soto", "Curso": "MAT"},
		},
	}

	out, err := exporter.Render(data, "Calificaciones")
	require.NoError(t, err)
	assert.Contains(t, string(out[:8]), "%PDF")
}
