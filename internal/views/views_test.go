package views

import (
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdantgoods.org/shop-web/internal/cart"
	"verdantgoods.org/shop-web/internal/catalog"
)

func parseFragment(t *testing.T, frag template.HTML) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(frag)))
	require.NoError(t, err)
	return doc
}

// parseRows wraps row fragments in a table so the HTML5 parser keeps them
// where the cart page puts them instead of foster-parenting them out.
func parseRows(t *testing.T, frag template.HTML) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tbody>" + string(frag) + "</tbody></table>"))
	require.NoError(t, err)
	return doc
}

func sampleProduct() catalog.Product {
	return catalog.Product{
		ID:          "bamboo-case",
		Name:        "Bamboo Case",
		Short:       "Compostable phone case",
		Description: "Hand-finished **bamboo** shell.",
		Price:       catalog.Price(1999),
		Image:       "/assets/img/bamboo-case.jpg",
	}
}

func TestProductCard(t *testing.T) {
	doc := parseFragment(t, ProductCard(sampleProduct()))

	card := doc.Find(".product.card")
	require.Equal(t, 1, card.Length())
	id, _ := card.Attr("data-id")
	assert.Equal(t, "bamboo-case", id)

	assert.Equal(t, "Bamboo Case", doc.Find("h4").Text())
	assert.Equal(t, "$19.99", doc.Find(".price").Text())

	href, _ := doc.Find("a.btn-outline").Attr("href")
	assert.Equal(t, "/product?id=bamboo-case", href)

	action, _ := doc.Find("form").Attr("action")
	assert.Equal(t, "/cart/add", action)
	val, _ := doc.Find(`input[name="product_id"]`).Attr("value")
	assert.Equal(t, "bamboo-case", val)
}

func TestProductCardEscapesFields(t *testing.T) {
	p := sampleProduct()
	p.Name = `<script>alert("x")</script>`
	frag := ProductCard(p)

	assert.NotContains(t, string(frag), "<script>")
	doc := parseFragment(t, frag)
	assert.Contains(t, doc.Find("h4").Text(), `alert("x")`)
}

func TestProductCards(t *testing.T) {
	a := sampleProduct()
	b := sampleProduct()
	b.ID = "solar-bank"
	b.Name = "Solar Bank"

	doc := parseFragment(t, ProductCards([]catalog.Product{a, b}))
	assert.Equal(t, 2, doc.Find(".product.card").Length())
}

func TestProductDetail(t *testing.T) {
	frag := ProductDetail(sampleProduct(), template.HTML("<p>Hand-finished <strong>bamboo</strong> shell.</p>"))
	doc := parseFragment(t, frag)

	assert.Equal(t, "Bamboo Case", doc.Find("h2").Text())
	assert.Equal(t, 1, doc.Find(".product-description strong").Length())
	assert.Equal(t, 1, doc.Find(`input[name="qty"]`).Length())

	// Buy now carries the checkout redirect.
	next, _ := doc.Find(`input[name="next"]`).Attr("value")
	assert.Equal(t, "/checkout", next)
}

func TestCartRow(t *testing.T) {
	item := cart.Item{Product: sampleProduct(), Qty: 3}
	doc := parseRows(t, CartRow(item))

	// The row must survive table tree construction in place.
	row := doc.Find("tbody > tr.cart-row")
	require.Equal(t, 1, row.Length())
	id, _ := row.Attr("data-id")
	assert.Equal(t, "bamboo-case", id)

	assert.Equal(t, "Bamboo Case", row.Find("strong").First().Text())
	assert.Equal(t, "$19.99 each", strings.TrimSpace(row.Find(".muted.small").Text()))
	assert.Equal(t, "3", row.Find(".qty").Text())
	assert.Equal(t, "$59.97", row.Find(".line-total").Text())

	actions := map[string]bool{}
	row.Find("form").Each(func(_ int, s *goquery.Selection) {
		action, _ := s.Attr("action")
		actions[action] = true
	})
	assert.True(t, actions["/cart/increase"])
	assert.True(t, actions["/cart/decrease"])
	assert.True(t, actions["/cart/remove"])
}

func TestCartRowsStayInsideTableBody(t *testing.T) {
	items := []cart.Item{
		{Product: sampleProduct(), Qty: 1},
		{Product: catalog.Product{ID: "cork-stand", Name: "Cork Stand", Price: catalog.Price(1850)}, Qty: 2},
	}
	doc := parseRows(t, CartRows(items))

	assert.Equal(t, 2, doc.Find("tbody > tr.cart-row").Length())
	// Nothing foster-parented above the table.
	assert.Equal(t, 0, doc.Find("body > .cart-row, body > form").Length())
}

func TestOrderSummary(t *testing.T) {
	doc := parseFragment(t, OrderSummary(cart.Summary{Count: 3, Subtotal: 3000, Shipping: 499, Total: 3499}))

	text := doc.Find(".order-summary").Text()
	assert.Contains(t, text, "$30.00")
	assert.Contains(t, text, "$4.99")
	assert.Contains(t, text, "$34.99")

	href, _ := doc.Find("a.btn-primary").Attr("href")
	assert.Equal(t, "/checkout", href)
}

func TestCheckoutLines(t *testing.T) {
	items := []cart.Item{
		{Product: sampleProduct(), Qty: 2},
	}
	doc := parseFragment(t, CheckoutLines(items))

	line := doc.Find(".checkout-line")
	require.Equal(t, 1, line.Length())
	assert.Contains(t, line.Text(), "Bamboo Case x 2")
	assert.Contains(t, line.Text(), "$39.98")
}
