package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overviewDataset() Dataset {
	return Dataset{
		Headers: []string{"metric", "value"},
		Rows: []map[string]string{
			{"metric": "News articles", "value": "12"},
			{"metric": "Readers", "value": "340"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	data, err := NewCSVExporter().Render(overviewDataset())
	require.NoError(t, err)

	assert.Equal(t, "metric,value\nNews articles,12\nReaders,340\n", string(data))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRendersDocument(t *testing.T) {
	data, err := NewPDFExporter().Render(overviewDataset(), "Platform Overview")
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "Platform Overview")
	require.Error(t, err)
}
