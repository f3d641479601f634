package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"expensetracker/internal/model"
)

func expenseOn(amount float64, category string, y int, m time.Month, d int) model.Expense {
	return model.Expense{Amount: amount, Category: category, Date: model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

func TestSummarize(t *testing.T) {
	expenses := []model.Expense{
		expenseOn(100, "Food", 2024, time.March, 3),
		expenseOn(50, "Food", 2024, time.March, 10),
		expenseOn(25, "Transport", 2024, time.March, 12),
	}

	got := Summarize(expenses)

	assert.Equal(t, 175.0, got.TotalSpend)
	assert.Equal(t, map[string]float64{"Food": 150, "Transport": 25}, got.CategoryWise)
	assert.Equal(t, 3, got.ExpenseCount)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	assert.Equal(t, 0.0, got.TotalSpend)
	assert.NotNil(t, got.CategoryWise)
	assert.Empty(t, got.CategoryWise)
	assert.Equal(t, 0, got.ExpenseCount)
}

func TestSummarize_DecimalAccumulation(t *testing.T) {
	got := Summarize([]model.Expense{
		expenseOn(0.1, "Coffee", 2024, time.March, 1),
		expenseOn(0.2, "Coffee", 2024, time.March, 2),
	})

	assert.Equal(t, 0.3, got.TotalSpend)
	assert.Equal(t, 0.3, got.CategoryWise["Coffee"])
}

func TestSummarize_BlankCategoryIsOther(t *testing.T) {
	got := Summarize([]model.Expense{
		expenseOn(10, "", 2024, time.March, 1),
		expenseOn(5, "   ", 2024, time.March, 2),
	})

	assert.Equal(t, map[string]float64{OtherCategory: 15}, got.CategoryWise)
}

func TestSummarize_SkipsNonFiniteAmounts(t *testing.T) {
	got := Summarize([]model.Expense{
		expenseOn(math.Inf(1), "Food", 2024, time.March, 1),
		expenseOn(math.NaN(), "Food", 2024, time.March, 2),
		expenseOn(12.5, "Food", 2024, time.March, 3),
	})

	assert.Equal(t, 12.5, got.TotalSpend)
	assert.Equal(t, map[string]float64{"Food": 12.5}, got.CategoryWise)
}

func TestFilterByPeriod(t *testing.T) {
	expenses := []model.Expense{
		expenseOn(1, "A", 2024, time.March, 31),
		expenseOn(2, "A", 2024, time.April, 1),
		expenseOn(3, "A", 2023, time.March, 15),
		expenseOn(4, "A", 2024, time.March, 1),
	}

	got := FilterByPeriod(expenses, Period{Month: 3, Year: 2024})

	assert.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].Amount)
	assert.Equal(t, 4.0, got[1].Amount)
	assert.Empty(t, FilterByPeriod(expenses, Period{Month: 5, Year: 2024}))
}
