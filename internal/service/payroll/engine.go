package payroll

import "github.com/shopspring/decimal"

// WorkingDaysPerMonth is the fixed working month the salary policy
// prorates over, regardless of the calendar.
const WorkingDaysPerMonth = 26

// Salary policy. These mirror the company handbook: pay is prorated over
// the fixed working month, every late day costs a flat deduction,
// overtime pays time-and-a-half on the derived hourly rate, and
// near-perfect attendance earns a flat bonus.
var (
	standardWorkingDays = decimal.NewFromInt(WorkingDaysPerMonth)
	standardHoursPerDay = decimal.NewFromInt(8)
	lateDeductionPerDay = decimal.NewFromInt(100)
	overtimeMultiplier  = decimal.NewFromFloat(1.5)
	bonusThreshold      = decimal.NewFromFloat(0.95)
	attendanceBonus     = decimal.NewFromInt(1000)
)

// MonthlyAttendance is the per-employee rollup the engine consumes.
type MonthlyAttendance struct {
	PresentDays   int
	LateDays      int
	OvertimeHours decimal.Decimal
}

// Breakdown is the result of one salary computation.
type Breakdown struct {
	PerDayRate  decimal.Decimal
	EarnedBase  decimal.Decimal
	HourlyRate  decimal.Decimal
	OvertimePay decimal.Decimal
	Deductions  decimal.Decimal
	Bonus       decimal.Decimal
	GrossSalary decimal.Decimal
	NetSalary   decimal.Decimal
}

// Compute derives the salary breakdown from the base salary and the
// month's attendance. Net salary is gross minus deductions and is not
// floored at zero: a negative net is a signal the inputs are wrong, not
// something to hide.
func Compute(baseSalary decimal.Decimal, att MonthlyAttendance) Breakdown {
	presentDays := decimal.NewFromInt(int64(att.PresentDays))
	lateDays := decimal.NewFromInt(int64(att.LateDays))

	perDay := baseSalary.Div(standardWorkingDays)
	earned := perDay.Mul(presentDays)
	hourly := perDay.Div(standardHoursPerDay)
	overtimePay := hourly.Mul(overtimeMultiplier).Mul(att.OvertimeHours)
	deductions := lateDeductionPerDay.Mul(lateDays)

	bonus := decimal.Zero
	if presentDays.GreaterThanOrEqual(bonusThreshold.Mul(standardWorkingDays)) {
		bonus = attendanceBonus
	}

	gross := earned.Add(overtimePay).Add(bonus)
	net := gross.Sub(deductions)

	return Breakdown{
		PerDayRate:  perDay,
		EarnedBase:  earned,
		HourlyRate:  hourly,
		OvertimePay: overtimePay,
		Deductions:  deductions,
		Bonus:       bonus,
		GrossSalary: gross,
		NetSalary:   net,
	}
}
