// Package views holds the pure renderers mapping catalog and cart records to
// markup fragments. Rendering goes through html/template so every field is
// escaped on the way into the page.
package views

import (
	"html/template"
	"strings"

	"verdantgoods.org/shop-web/internal/cart"
	"verdantgoods.org/shop-web/internal/catalog"
	"verdantgoods.org/shop-web/internal/format"
)

var frags = template.Must(template.New("frags").Funcs(template.FuncMap{
	"currency": format.Currency,
}).Parse(fragmentSrc))

const fragmentSrc = `
{{define "product_card"}}
<div class="product card" data-id="{{.ID}}">
  <img src="{{.Image}}" alt="{{.Name}} image" />
  <h4>{{.Name}}</h4>
  <p class="muted small">{{.Short}}</p>
  <div class="product-card-footer">
    <div class="price">{{currency .Price.Minor}}</div>
    <div class="product-card-actions">
      <a class="btn btn-outline" href="/product?id={{.ID}}">View</a>
      <form method="post" action="/cart/add">
        <input type="hidden" name="product_id" value="{{.ID}}" />
        <button type="submit" class="btn btn-primary">Add</button>
      </form>
    </div>
  </div>
</div>
{{end}}

{{define "product_detail"}}
<div class="product card" data-id="{{.Product.ID}}">
  <img src="{{.Product.Image}}" alt="{{.Product.Name}}" class="product-hero" />
  <h2>{{.Product.Name}}</h2>
  <p class="muted">{{.Product.Short}}</p>
  <div class="product-description">{{.Description}}</div>
  <div class="product-detail-actions">
    <div class="price">{{currency .Product.Price.Minor}}</div>
    <form method="post" action="/cart/add" class="add-form">
      <input type="hidden" name="product_id" value="{{.Product.ID}}" />
      <input type="number" name="qty" value="1" min="1" class="qty-input" />
      <button type="submit" class="btn btn-primary">Add to cart</button>
    </form>
    <form method="post" action="/cart/add">
      <input type="hidden" name="product_id" value="{{.Product.ID}}" />
      <input type="hidden" name="next" value="/checkout" />
      <button type="submit" class="btn btn-outline">Buy now</button>
    </form>
  </div>
</div>
{{end}}

{{define "cart_row"}}
<tr class="cart-row" data-id="{{.ID}}">
  <td class="cart-row-main">
    <img src="{{.Image}}" alt="{{.Name}}" class="cart-thumb" />
    <strong>{{.Name}}</strong>
  </td>
  <td class="muted small">{{currency .Price.Minor}} each</td>
  <td>
    <div class="qty-stepper">
      <form method="post" action="/cart/decrease">
        <input type="hidden" name="product_id" value="{{.ID}}" />
        <button type="submit" class="btn btn-outline">-</button>
      </form>
      <span class="qty">{{.Qty}}</span>
      <form method="post" action="/cart/increase">
        <input type="hidden" name="product_id" value="{{.ID}}" />
        <button type="submit" class="btn btn-outline">+</button>
      </form>
    </div>
  </td>
  <td class="line-total">{{currency .LineTotal}}</td>
  <td>
    <form method="post" action="/cart/remove">
      <input type="hidden" name="product_id" value="{{.ID}}" />
      <button type="submit" class="btn btn-outline">Remove</button>
    </form>
  </td>
</tr>
{{end}}

{{define "order_summary"}}
<div class="card order-summary">
  <h3>Order summary</h3>
  <p>Subtotal: <strong>{{currency .Subtotal}}</strong></p>
  <p>Shipping: <strong>{{currency .Shipping}}</strong></p>
  <p>Total: <strong>{{currency .Total}}</strong></p>
  <a href="/checkout" class="btn btn-primary">Proceed to checkout</a>
</div>
{{end}}

{{define "checkout_line"}}
<div class="checkout-line">{{.Name}} x {{.Qty}} <strong>{{currency .LineTotal}}</strong></div>
{{end}}
`

type productDetailData struct {
	Product     catalog.Product
	Description template.HTML
}

// ProductCard renders a catalog grid card keyed by product id.
func ProductCard(p catalog.Product) template.HTML {
	return render("product_card", p)
}

// ProductCards renders a slice of cards joined into one grid fragment.
func ProductCards(products []catalog.Product) template.HTML {
	var b strings.Builder
	for _, p := range products {
		b.WriteString(string(ProductCard(p)))
		b.WriteByte('\n')
	}
	return template.HTML(b.String())
}

// ProductDetail renders the detail region. Description is pre-rendered,
// sanitized HTML (see cms.Markdown); everything else is escaped here.
func ProductDetail(p catalog.Product, description template.HTML) template.HTML {
	return render("product_detail", productDetailData{Product: p, Description: description})
}

// CartRow renders one cart line with its quantity stepper and remove action.
func CartRow(i cart.Item) template.HTML {
	return render("cart_row", i)
}

// CartRows renders the cart listing fragment.
func CartRows(items []cart.Item) template.HTML {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(string(CartRow(item)))
		b.WriteByte('\n')
	}
	return template.HTML(b.String())
}

// OrderSummary renders the derived subtotal/shipping/total block.
func OrderSummary(s cart.Summary) template.HTML {
	return render("order_summary", s)
}

// CheckoutLines renders the order region shown on the checkout page.
func CheckoutLines(items []cart.Item) template.HTML {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(string(render("checkout_line", item)))
	}
	return template.HTML(b.String())
}

func render(name string, data any) template.HTML {
	var b strings.Builder
	if err := frags.ExecuteTemplate(&b, name, data); err != nil {
		return ""
	}
	return template.HTML(b.String())
}
