package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadCustomers(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Name", "Mobile", "Vehicle Number", "Email"},
		[]interface{}{" Ravi Kumar ", "9876543210", "KA01AB1234", "ravi@example.com"},
		[]interface{}{"", "", "", ""},
		[]interface{}{"Asha", "9123456780", "", ""},
	)

	rows, err := ReadCustomers(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, CustomerRow{Row: 2, Name: "Ravi Kumar", Mobile: "9876543210", VehicleNo: "KA01AB1234", Email: "ravi@example.com"}, rows[0])
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, "Asha", rows[1].Name)
	assert.Empty(t, rows[1].VehicleNo)
}

func TestReadCustomers_MissingColumn(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"name", "phone"},
		[]interface{}{"Ravi", "9876543210"},
	)

	_, err := ReadCustomers(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vehicle_no")
}

func TestReadCustomers_HeaderOnly(t *testing.T) {
	buf := workbook(t, []interface{}{"name", "mobile", "vehicle_no"})

	_, err := ReadCustomers(buf)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestReadCustomers_NotAWorkbook(t *testing.T) {
	_, err := ReadCustomers(bytes.NewBufferString("name,mobile\n"))
	assert.Error(t, err)
}
