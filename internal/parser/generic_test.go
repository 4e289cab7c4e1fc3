package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/product-scraper/internal/models"
)

const genericURL = "https://shop.example.com/products/desk-lamp"

func extractGeneric(t *testing.T, markup string) (models.ExtractionResult, models.Provenance) {
	t.Helper()
	result, prov := NewProductParser().Extract(models.ExtractionRequest{URL: genericURL, Markup: markup})
	require.Equal(t, StrategyGeneric, prov.Strategy)
	return result, prov
}

func TestGenericPrice(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected *float64
	}{
		{"Thousands and cents", `<body><p>Now only $1,234.56!</p></body>`, floatPtr(1234.56)},
		{"Cents", `<body><span class="price">$19.99</span></body>`, floatPtr(19.99)},
		{"Whole dollars", `<body>From $250 today</body>`, floatPtr(250)},
		{"First amount wins", `<body><s>$30.00</s> <b>$24.00</b></body>`, floatPtr(30)},
		{"Entity encoded dollar sign", `<body>Price: &#36;7.50</body>`, floatPtr(7.5)},
		{"No dollar amount", `<body>Price on request, 19.99 EUR</body>`, nil},
		{"Amount only inside script", `<body><script>window.price = "$5.00";</script></body>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := extractGeneric(t, tt.html)
			assert.Equal(t, tt.expected, result.Price)
		})
	}
}

func TestGenericMetadata(t *testing.T) {
	markup := `<html><head>
		<meta property="og:title" content="  Brass   Desk Lamp
		">
		<meta property="og:image" content="https://cdn.example.com/lamp.jpg?w=800\u0026h=600">
	</head><body><h1>Brass Desk Lamp</h1></body></html>`

	result, prov := extractGeneric(t, markup)

	require.NotNil(t, result.Name)
	assert.Equal(t, "Brass Desk Lamp", *result.Name)
	require.NotNil(t, result.Image)
	assert.Equal(t, "https://cdn.example.com/lamp.jpg?w=800&h=600", *result.Image)
	assert.Nil(t, result.Price)
	assert.Equal(t, "og_title", prov.Name)
	assert.Equal(t, "og_image", prov.Image)
}

func TestGenericMetadata_EmptyFirstTag(t *testing.T) {
	markup := `<html><head>
		<meta property="og:title" content="">
		<meta property="og:title" content="Real Lamp">
	</head><body></body></html>`

	result, prov := extractGeneric(t, markup)

	require.NotNil(t, result.Name)
	assert.Equal(t, "Real Lamp", *result.Name)
	assert.Equal(t, "og_title", prov.Name)
}

func TestGenericNeverYieldsVariants(t *testing.T) {
	markup := `<body>$10.00 "color_name":"Blue" "dimensionValuesDisplayData":{"Size":"L"}</body>`

	result, prov := extractGeneric(t, markup)
	assert.NotNil(t, result.Variants)
	assert.Empty(t, result.Variants)
	assert.Empty(t, prov.Variants)
}

func TestGenericIgnoresAmazonMarkup(t *testing.T) {
	markup := `<span id="productTitle">Echo Dot</span>`

	result, _ := extractGeneric(t, markup)
	assert.Nil(t, result.Name)
	assert.Nil(t, result.Price)
}
