package models

// ProductLine tags the details variant carried by an order.
type ProductLine string

const (
	LinePrint ProductLine = "print"
	LineCake  ProductLine = "cake"
)

type ColorMode string

const (
	ColorBlackWhite ColorMode = "black_white"
	ColorFull       ColorMode = "full_color"
	ColorMixed      ColorMode = "mixed"
)

type PaperType string

const (
	PaperStandard PaperType = "standard"
	PaperGlossy   PaperType = "glossy"
)

type Sides string

const (
	SingleSided Sides = "single"
	DoubleSided Sides = "double"
)

// OrderDetails is the tagged variant stored in the ledger's details
// column. The ledger itself never interprets it; pricing and the UI
// pattern-match on Line.
type OrderDetails struct {
	Line     ProductLine   `json:"line"`
	Print    *PrintDetails `json:"print,omitempty"`
	Cake     *CakeDetails  `json:"cake,omitempty"`
	Comments string        `json:"comments,omitempty"`
	Files    []string      `json:"files,omitempty"` // renamed upload manifest
}

type PrintDetails struct {
	Pages      int       `json:"pages"`
	ColorMode  ColorMode `json:"color_mode"`
	PaperType  PaperType `json:"paper_type"`
	ColorPages int       `json:"color_pages,omitempty"` // only meaningful for mixed mode
	Sides      Sides     `json:"sides,omitempty"`
	PageRange  string    `json:"page_range,omitempty"` // textual spec the estimate came from
}

type CakeDetails struct {
	Flavor   string   `json:"flavor"`
	WeightKg float64  `json:"weight_kg"`
	Shape    string   `json:"shape"`
	Toppings []string `json:"toppings,omitempty"`
	Message  string   `json:"message,omitempty"`
}
