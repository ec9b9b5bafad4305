package mailchimp

import (
	"context"
	"time"
)

// Order is an ecommerce order imported for segmentation and reporting.
type Order struct {
	ID         string      `json:"id"`
	CampaignID string      `json:"campaign_id,omitempty"`
	EmailID    string      `json:"email_id,omitempty"`
	Email      string      `json:"email,omitempty"`
	Total      float64     `json:"total"`
	OrderDate  string      `json:"order_date,omitempty"`
	Shipping   float64     `json:"shipping,omitempty"`
	Tax        float64     `json:"tax,omitempty"`
	StoreID    string      `json:"store_id"`
	StoreName  string      `json:"store_name,omitempty"`
	Items      []OrderItem `json:"items"`
}

// OrderItem is one line of an Order.
type OrderItem struct {
	LineNum      int     `json:"line_num,omitempty"`
	ProductID    int     `json:"product_id"`
	SKU          string  `json:"sku,omitempty"`
	ProductName  string  `json:"product_name"`
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Qty          float64 `json:"qty,omitempty"`
	Cost         float64 `json:"cost,omitempty"`
}

// OrderInfo is an order as returned by GetOrders.
type OrderInfo struct {
	StoreID    string      `json:"store_id"`
	StoreName  string      `json:"store_name"`
	OrderID    string      `json:"order_id"`
	Email      string      `json:"email"`
	OrderTotal float64     `json:"order_total"`
	TaxTotal   float64     `json:"tax_total"`
	ShipTotal  float64     `json:"ship_total"`
	OrderDate  string      `json:"order_date"`
	Lines      []OrderLine `json:"lines"`
}

// OrderLine is one line of an OrderInfo.
type OrderLine struct {
	LineNum      int     `json:"line_num"`
	ProductID    int     `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductSKU   string  `json:"product_sku"`
	ProductCatID int     `json:"product_category_id"`
	ProductCat   string  `json:"product_category_name"`
	Qty          float64 `json:"qty"`
	Cost         float64 `json:"cost"`
}

// OrderListResult is one page of orders.
type OrderListResult struct {
	Total int         `json:"total"`
	Data  []OrderInfo `json:"data"`
}

// GetOrdersOptions are the optional parameters of GetOrders.
type GetOrdersOptions struct {
	// CampaignID limits the result to orders attributed to one campaign.
	CampaignID string
	Page
	// Since only returns orders placed after this time.
	Since time.Time
}

// AddOrder records an e-commerce order against a campaign or the account.
//
// API: POST /ecomm/order-add.json
func (c *Client) AddOrder(ctx context.Context, order Order) (*CompleteResult, error) {
	if order.Items == nil {
		order.Items = []OrderItem{}
	}

	var resp CompleteResult
	if err := c.call(ctx, "ecomm/order-add", params{"order": order}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteOrder removes a recorded order.
//
// API: POST /ecomm/order-del.json
func (c *Client) DeleteOrder(ctx context.Context, storeID, orderID string) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "ecomm/order-del", params{"store_id": storeID, "order_id": orderID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrders returns one page of recorded orders.
//
// API: POST /ecomm/orders.json
func (c *Client) GetOrders(ctx context.Context, opts *GetOrdersOptions) (*OrderListResult, error) {
	if opts == nil {
		opts = &GetOrdersOptions{}
	}
	p := params{
		"start": opts.start(),
		"limit": opts.limit(100, 500),
	}
	if opts.CampaignID != "" {
		p["cid"] = opts.CampaignID
	}
	if since := FormatTime(opts.Since); since != "" {
		p["since"] = since
	}

	var resp OrderListResult
	if err := c.call(ctx, "ecomm/orders", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
