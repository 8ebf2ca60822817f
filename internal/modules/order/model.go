// README: Order snapshot as served by the order service; replaced wholesale on every fetch.
package order

import (
	"encoding/json"
	"time"

	"ordertrack/internal/types"
)

type Place struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address,omitempty"`
	Directions string  `json:"directions,omitempty"`
}

func (p Place) Point() types.Point {
	return types.Point{Lat: p.Latitude, Lng: p.Longitude}
}

type Partner struct {
	ID       types.ID     `json:"id"`
	Name     string       `json:"name,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Location *types.Point `json:"location,omitempty"`
}

// UnmarshalJSON accepts a bare id string, an object keyed by id, or one keyed by _id.
func (p *Partner) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*p = Partner{ID: types.ID(id)}
		return nil
	}
	type alias Partner
	var raw struct {
		alias
		MongoID types.ID `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Partner(raw.alias)
	if p.ID == "" {
		p.ID = raw.MongoID
	}
	return nil
}

type Product struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
}

type Item struct {
	Product  Product     `json:"product"`
	Quantity int         `json:"quantity"`
	Price    types.Money `json:"price"`
	MRP      types.Money `json:"mrp"`
}

type Totals struct {
	Subtotal    types.Money `json:"subtotal"`
	DeliveryFee types.Money `json:"deliveryFee"`
	Discount    types.Money `json:"discount"`
	Total       types.Money `json:"total"`
}

type Payment struct {
	Method string `json:"method"`
	Status string `json:"status"`
}

type Order struct {
	ID        types.ID  `json:"id"`
	Status    string    `json:"status"`
	Pickup    Place     `json:"pickupLocation"`
	Delivery  Place     `json:"deliveryLocation"`
	Partner   *Partner  `json:"deliveryPartner,omitempty"`
	Items     []Item    `json:"items,omitempty"`
	Totals    Totals    `json:"totals"`
	Payment   Payment   `json:"payment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) UnmarshalJSON(b []byte) error {
	type alias Order
	var raw struct {
		alias
		MongoID types.ID `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*o = Order(raw.alias)
	if o.ID == "" {
		o.ID = raw.MongoID
	}
	return nil
}

func (o *Order) HasPartner() bool {
	return o != nil && o.Partner != nil && o.Partner.ID != ""
}

// Clone returns a deep enough copy for handing out to subscribers.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.Partner != nil {
		p := *o.Partner
		if o.Partner.Location != nil {
			loc := *o.Partner.Location
			p.Location = &loc
		}
		c.Partner = &p
	}
	c.Items = append([]Item(nil), o.Items...)
	return &c
}
