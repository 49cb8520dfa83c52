package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Attempts")
	f.SetCellValue("Attempts", "A1", "Score")
	f.SetCellValue("Attempts", "A2", 87.5)

	out, err := workbookFile(f, "test.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "test.xlsx", out.Filename)
	assert.NotEmpty(t, out.Content)

	// xlsx files are zip archives.
	assert.True(t, bytes.HasPrefix(out.Content, []byte("PK")))

	reopened, err := excelize.OpenReader(bytes.NewReader(out.Content))
	require.NoError(t, err)
	defer reopened.Close()

	val, err := reopened.GetCellValue("Attempts", "A2")
	require.NoError(t, err)
	assert.Equal(t, "87.5", val)
}
