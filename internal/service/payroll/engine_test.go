package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCompute_FullAttendanceEarnsBonus(t *testing.T) {
	t.Parallel()

	b := Compute(d("26000"), MonthlyAttendance{
		PresentDays:   26,
		LateDays:      0,
		OvertimeHours: decimal.Zero,
	})

	assert.True(t, b.PerDayRate.Equal(d("1000")), "per day rate: %s", b.PerDayRate)
	assert.True(t, b.EarnedBase.Equal(d("26000")), "earned base: %s", b.EarnedBase)
	assert.True(t, b.OvertimePay.Equal(d("0")), "overtime pay: %s", b.OvertimePay)
	assert.True(t, b.Deductions.Equal(d("0")), "deductions: %s", b.Deductions)
	assert.True(t, b.Bonus.Equal(d("1000")), "bonus: %s", b.Bonus)
	assert.True(t, b.GrossSalary.Equal(d("27000")), "gross: %s", b.GrossSalary)
	assert.True(t, b.NetSalary.Equal(d("27000")), "net: %s", b.NetSalary)
}

func TestCompute_PartialAttendanceWithOvertimeAndLateness(t *testing.T) {
	t.Parallel()

	b := Compute(d("26000"), MonthlyAttendance{
		PresentDays:   20,
		LateDays:      3,
		OvertimeHours: d("10"),
	})

	assert.True(t, b.PerDayRate.Equal(d("1000")), "per day rate: %s", b.PerDayRate)
	assert.True(t, b.EarnedBase.Equal(d("20000")), "earned base: %s", b.EarnedBase)
	assert.True(t, b.HourlyRate.Equal(d("125")), "hourly rate: %s", b.HourlyRate)
	assert.True(t, b.OvertimePay.Equal(d("1875")), "overtime pay: %s", b.OvertimePay)
	assert.True(t, b.Deductions.Equal(d("300")), "deductions: %s", b.Deductions)
	assert.True(t, b.Bonus.Equal(d("0")), "bonus: %s", b.Bonus)
	assert.True(t, b.GrossSalary.Equal(d("21875")), "gross: %s", b.GrossSalary)
	assert.True(t, b.NetSalary.Equal(d("21575")), "net: %s", b.NetSalary)
}

func TestCompute_BonusThreshold(t *testing.T) {
	t.Parallel()

	// 95% of 26 working days is 24.7, so 25 present days qualify and 24
	// do not.
	tests := []struct {
		name        string
		presentDays int
		wantBonus   string
	}{
		{"just above threshold", 25, "1000"},
		{"just below threshold", 24, "0"},
		{"full month", 26, "1000"},
		{"no attendance", 0, "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := Compute(d("26000"), MonthlyAttendance{
				PresentDays:   tt.presentDays,
				OvertimeHours: decimal.Zero,
			})
			assert.True(t, b.Bonus.Equal(d(tt.wantBonus)), "bonus: %s", b.Bonus)
		})
	}
}

func TestCompute_ZeroAttendanceYieldsZeroNet(t *testing.T) {
	t.Parallel()

	b := Compute(d("26000"), MonthlyAttendance{OvertimeHours: decimal.Zero})

	assert.True(t, b.EarnedBase.IsZero(), "earned base: %s", b.EarnedBase)
	assert.True(t, b.GrossSalary.IsZero(), "gross: %s", b.GrossSalary)
	assert.True(t, b.NetSalary.IsZero(), "net: %s", b.NetSalary)
}

func TestCompute_NetCanGoNegative(t *testing.T) {
	t.Parallel()

	// One barely paid present day and many late days push net below
	// zero; the engine reports it rather than flooring.
	b := Compute(d("260"), MonthlyAttendance{
		PresentDays:   1,
		LateDays:      5,
		OvertimeHours: decimal.Zero,
	})

	assert.True(t, b.NetSalary.IsNegative(), "net should be negative, got %s", b.NetSalary)
	assert.True(t, b.NetSalary.Equal(d("-490")), "net: %s", b.NetSalary)
}
