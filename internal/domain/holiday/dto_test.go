package holiday

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateHolidayRequest_Validate(t *testing.T) {
	note := "Libur Idul Fitri"
	assert.NoError(t, (&CreateHolidayRequest{Date: "2024-04-10", Note: &note}).Validate())
	assert.NoError(t, (&CreateHolidayRequest{Date: "2024-04-10"}).Validate())
	assert.Error(t, (&CreateHolidayRequest{Date: ""}).Validate())
	assert.Error(t, (&CreateHolidayRequest{Date: "10-04-2024"}).Validate())

	long := strings.Repeat("x", 501)
	assert.Error(t, (&CreateHolidayRequest{Date: "2024-04-10", Note: &long}).Validate())
}

func TestHolidayFilter_Validate(t *testing.T) {
	assert.NoError(t, (&HolidayFilter{}).Validate())
	assert.NoError(t, (&HolidayFilter{Year: 2024}).Validate())
	assert.Error(t, (&HolidayFilter{Year: 24}).Validate())
}

func TestErrHolidayDateExists_Message(t *testing.T) {
	assert.Equal(t, "Tanggal ini sudah ada", ErrHolidayDateExists.Error())
}
