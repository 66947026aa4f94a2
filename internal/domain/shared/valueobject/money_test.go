package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("100.50")
	require.NoError(t, err)
	assert.Equal(t, "100.50", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.00)
	b := NewMoneyFromFloat(33.33)

	assert.Equal(t, "133.33", a.Add(b).String())
	assert.Equal(t, "66.67", a.Sub(b).String())
	assert.Equal(t, "200.00", a.Mul(decimal.NewFromInt(2)).String())
	assert.Equal(t, "33.33", a.Div(decimal.NewFromInt(3)).Floor2().String())
}

func TestMoney_Percent(t *testing.T) {
	total := NewMoneyFromFloat(100.00)

	assert.Equal(t, "2.00", total.Percent(decimal.NewFromInt(2)).String())
	assert.Equal(t, "1.00", total.Percent(decimal.NewFromInt(1)).String())
	assert.Equal(t, "0.33", NewMoneyFromFloat(33.33).Percent(decimal.NewFromInt(1)).String())
}

func TestMoney_Round2_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"10.015", "10.02"},
		{"-10.005", "-10.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Round2().String())
		})
	}
}

func TestMoney_Floor2(t *testing.T) {
	m, err := NewMoneyFromString("33.3399")
	require.NoError(t, err)
	assert.Equal(t, "33.33", m.Floor2().String())
}

func TestMoney_ClampZero(t *testing.T) {
	assert.Equal(t, "0.00", NewMoneyFromFloat(-4.50).ClampZero().String())
	assert.Equal(t, "4.50", NewMoneyFromFloat(4.50).ClampZero().String())
	assert.True(t, Zero().ClampZero().IsZero())
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyFromFloat(10)
	b := NewMoneyFromFloat(20)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.GreaterThanOrEqual(NewMoneyFromFloat(10)))
	assert.True(t, a.LessThanOrEqual(NewMoneyFromFloat(10)))
	assert.True(t, a.Equals(NewMoneyFromFloat(10)))
	assert.False(t, a.Equals(b))
}
