// Package pricing turns order attributes into a quote. The engine is
// pure: same attributes, same amount, no side effects.
package pricing

import (
	"errors"
	"fmt"

	"order_studio/internal/models"
)

var ErrUnknownProductLine = errors.New("pricing: unknown product line")

// PrintRates are per-page rates in currency-agnostic units.
type PrintRates struct {
	BlackWhite float64
	Color      float64
	Glossy     float64
}

// CakeRates price a cake as per-kg flavor rate plus a flat shape
// premium plus a flat per-topping rate.
type CakeRates struct {
	FlavorPerKg   map[string]float64
	FallbackPerKg float64 // used when the flavor is not in the table
	ShapePremium  map[string]float64
	Topping       float64
}

func DefaultPrintRates() PrintRates {
	return PrintRates{BlackWhite: 2, Color: 10, Glossy: 20}
}

func DefaultCakeRates() CakeRates {
	return CakeRates{
		FlavorPerKg: map[string]float64{
			"Vanilla Dream":  400,
			"Rich Chocolate": 500,
			"Red Velvet":     600,
			"Butterscotch":   450,
			"Fresh Fruit":    550,
		},
		FallbackPerKg: 400,
		ShapePremium: map[string]float64{
			"Round":  0,
			"Square": 50,
			"Heart":  100,
		},
		Topping: 50,
	}
}

type Engine struct {
	print PrintRates
	cake  CakeRates
}

func NewEngine(print PrintRates, cake CakeRates) *Engine {
	return &Engine{print: print, cake: cake}
}

// Quote dispatches on the product line of the details variant.
func (e *Engine) Quote(d models.OrderDetails) (float64, error) {
	switch d.Line {
	case models.LinePrint:
		if d.Print == nil {
			return 0, fmt.Errorf("%w: print order without print details", ErrUnknownProductLine)
		}
		p := d.Print
		return e.PrintQuote(p.Pages, p.ColorMode, p.PaperType, p.ColorPages), nil
	case models.LineCake:
		if d.Cake == nil {
			return 0, fmt.Errorf("%w: cake order without cake details", ErrUnknownProductLine)
		}
		c := d.Cake
		return e.CakeQuote(c.Flavor, c.WeightKg, c.Shape, len(c.Toppings)), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProductLine, d.Line)
	}
}

// PrintQuote applies the rate rules in strict precedence order: glossy
// paper overrides the color mode entirely, then full color, then mixed
// (color pages clamped to the total), then black and white.
func (e *Engine) PrintQuote(pages int, mode models.ColorMode, paper models.PaperType, colorPages int) float64 {
	if pages < 0 {
		pages = 0
	}

	switch {
	case paper == models.PaperGlossy:
		return float64(pages) * e.print.Glossy
	case mode == models.ColorFull:
		return float64(pages) * e.print.Color
	case mode == models.ColorMixed:
		if colorPages < 0 {
			colorPages = 0
		}
		if colorPages > pages {
			colorPages = pages
		}
		return float64(colorPages)*e.print.Color + float64(pages-colorPages)*e.print.BlackWhite
	default:
		return float64(pages) * e.print.BlackWhite
	}
}

func (e *Engine) CakeQuote(flavor string, weightKg float64, shape string, toppingCount int) float64 {
	if weightKg < 0 {
		weightKg = 0
	}
	if toppingCount < 0 {
		toppingCount = 0
	}

	perKg, ok := e.cake.FlavorPerKg[flavor]
	if !ok {
		perKg = e.cake.FallbackPerKg
	}
	return perKg*weightKg + e.cake.ShapePremium[shape] + float64(toppingCount)*e.cake.Topping
}
