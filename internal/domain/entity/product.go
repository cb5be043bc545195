package entity

import (
	"math/big"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// QRCode is the alternate product lookup key. The backend sends it either as
// a JSON number or as a string, so it is kept in its textual form.
type QRCode string

func (q QRCode) String() string {
	return string(q)
}

// IsZero reports whether the code is blank.
func (q QRCode) IsZero() bool {
	return strings.TrimSpace(string(q)) == ""
}

// MarshalJSON emits a number when the code is a plain integer so the backend
// sees the same shape it stored; anything else stays a string.
func (q QRCode) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(q))
	if s == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts numbers, strings and null.
func (q *QRCode) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*q = ""
		return nil
	}
	if _, ok := raw.(float64); ok {
		*q = QRCode(numberText(strings.TrimSpace(string(data))))
		return nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return err
	}
	*q = QRCode(s)
	return nil
}

// numberText keeps integer literals as written and spells other numbers out
// in plain decimal, never in exponent form.
func numberText(literal string) string {
	if n, ok := new(big.Int).SetString(literal, 10); ok {
		return n.String()
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Product is a catalog entry as served by the backend.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	QRCode      QRCode   `json:"qrCode"`
	Ingredients []string `json:"ingredients,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
	Usage       string   `json:"usage,omitempty"`
}

// UnmarshalJSON falls back to the mongo style "_id" key and tolerates a
// price sent as a string.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var aux struct {
		plain
		MongoID string      `json:"_id"`
		Price   interface{} `json:"price"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	p.Price = cast.ToFloat64(aux.Price)
	return nil
}

// Input returns the editable fields of the product.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Images:      append([]string(nil), p.Images...),
		QRCode:      p.QRCode,
		Ingredients: append([]string(nil), p.Ingredients...),
		Benefits:    append([]string(nil), p.Benefits...),
		Usage:       p.Usage,
	}
}

// ProductInput holds the fields of a product submission (no id).
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	QRCode      QRCode   `json:"qrCode"`
	Ingredients []string `json:"ingredients"`
	Benefits    []string `json:"benefits"`
	Usage       string   `json:"usage"`
}

// Clean drops blank list entries the way the admin form does before saving.
func (in ProductInput) Clean() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.QRCode = QRCode(strings.TrimSpace(string(in.QRCode)))
	in.Images = nonBlank(in.Images)
	in.Ingredients = nonBlank(in.Ingredients)
	in.Benefits = nonBlank(in.Benefits)
	return in
}

// Update turns a full form into an update that sets every field. Empty
// lists are sent as [] so a cleared list is cleared on the backend too.
func (in ProductInput) Update() ProductUpdate {
	return ProductUpdate{
		Name:        &in.Name,
		Description: &in.Description,
		Price:       &in.Price,
		Category:    &in.Category,
		Images:      listOf(in.Images),
		QRCode:      &in.QRCode,
		Ingredients: listOf(in.Ingredients),
		Benefits:    listOf(in.Benefits),
		Usage:       &in.Usage,
	}
}

// ProductUpdate is a partial update; nil fields are not sent. A non-nil
// list pointer is always sent, as [] when the list is empty.
type ProductUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	QRCode      *QRCode   `json:"qrCode,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
	Benefits    *[]string `json:"benefits,omitempty"`
	Usage       *string   `json:"usage,omitempty"`
}

func listOf(items []string) *[]string {
	out := append(make([]string, 0, len(items)), items...)
	return &out
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
