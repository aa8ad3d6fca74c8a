package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_studio/internal/models"
)

func TestPrintQuote(t *testing.T) {
	e := NewEngine(DefaultPrintRates(), DefaultCakeRates())

	tests := []struct {
		name       string
		pages      int
		mode       models.ColorMode
		paper      models.PaperType
		colorPages int
		want       float64
	}{
		{"black and white", 10, models.ColorBlackWhite, models.PaperStandard, 0, 20},
		{"full color", 10, models.ColorFull, models.PaperStandard, 0, 100},
		{"mixed", 12, models.ColorMixed, models.PaperStandard, 3, 48},
		{"mixed clamps color pages", 5, models.ColorMixed, models.PaperStandard, 9, 50},
		{"glossy dominates bw", 10, models.ColorBlackWhite, models.PaperGlossy, 0, 200},
		{"glossy dominates full color", 10, models.ColorFull, models.PaperGlossy, 0, 200},
		{"glossy dominates mixed", 10, models.ColorMixed, models.PaperGlossy, 4, 200},
		{"zero pages", 0, models.ColorFull, models.PaperStandard, 0, 0},
		{"negative pages treated as zero", -3, models.ColorFull, models.PaperStandard, 0, 0},
		{"negative color pages treated as zero", 4, models.ColorMixed, models.PaperStandard, -2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.PrintQuote(tt.pages, tt.mode, tt.paper, tt.colorPages)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestPrintQuoteDeterministic(t *testing.T) {
	e := NewEngine(DefaultPrintRates(), DefaultCakeRates())
	first := e.PrintQuote(37, models.ColorMixed, models.PaperStandard, 11)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.PrintQuote(37, models.ColorMixed, models.PaperStandard, 11))
	}
}

func TestCakeQuote(t *testing.T) {
	e := NewEngine(DefaultPrintRates(), DefaultCakeRates())

	tests := []struct {
		name     string
		flavor   string
		weight   float64
		shape    string
		toppings int
		want     float64
	}{
		{"round chocolate", "Rich Chocolate", 1, "Round", 0, 500},
		{"heart red velvet with toppings", "Red Velvet", 2, "Heart", 3, 1450},
		{"square butterscotch", "Butterscotch", 1.5, "Square", 1, 775},
		{"unknown flavor falls back", "Mystery", 1, "Round", 0, 400},
		{"unknown shape adds nothing", "Vanilla Dream", 1, "Hexagon", 0, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.CakeQuote(tt.flavor, tt.weight, tt.shape, tt.toppings))
		})
	}
}

func TestQuoteDispatch(t *testing.T) {
	e := NewEngine(DefaultPrintRates(), DefaultCakeRates())

	amount, err := e.Quote(models.OrderDetails{
		Line: models.LinePrint,
		Print: &models.PrintDetails{
			Pages:      12,
			ColorMode:  models.ColorMixed,
			PaperType:  models.PaperStandard,
			ColorPages: 3,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 48.0, amount)

	amount, err = e.Quote(models.OrderDetails{
		Line: models.LineCake,
		Cake: &models.CakeDetails{Flavor: "Fresh Fruit", WeightKg: 1, Shape: "Round"},
	})
	require.NoError(t, err)
	assert.Equal(t, 550.0, amount)

	_, err = e.Quote(models.OrderDetails{Line: "subscription"})
	assert.ErrorIs(t, err, ErrUnknownProductLine)

	_, err = e.Quote(models.OrderDetails{Line: models.LinePrint})
	assert.ErrorIs(t, err, ErrUnknownProductLine)
}
