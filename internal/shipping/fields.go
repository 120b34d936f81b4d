package shipping

import "strings"

// Field names one input of the shipping form.
type Field string

const (
	FieldFullName   Field = "fullName"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldAddress    Field = "address"
	FieldCity       Field = "city"
	FieldPostalCode Field = "postalCode"
)

var orderedFields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldCity,
	FieldPostalCode,
}

// Fields lists the form fields in display order.
func Fields() []Field {
	out := make([]Field, len(orderedFields))
	copy(out, orderedFields)
	return out
}

func (f Field) String() string {
	return string(f)
}

// IsKnown reports whether f is one of the six shipping fields.
func (f Field) IsKnown() bool {
	_, ok := rules[f]
	return ok
}

// ParseField resolves a field name case-insensitively.
func ParseField(value string) (Field, bool) {
	value = strings.TrimSpace(value)
	for _, f := range orderedFields {
		if strings.EqualFold(string(f), value) {
			return f, true
		}
	}
	return "", false
}

// Info is the captured shipping snapshot. Values are stored exactly as submitted.
type Info struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Values flattens the snapshot into a field map.
func (i Info) Values() map[Field]string {
	return map[Field]string{
		FieldFullName:   i.FullName,
		FieldEmail:      i.Email,
		FieldPhone:      i.Phone,
		FieldAddress:    i.Address,
		FieldCity:       i.City,
		FieldPostalCode: i.PostalCode,
	}
}

// InfoFromValues builds a snapshot from a field map. Missing fields are empty.
func InfoFromValues(values map[Field]string) Info {
	return Info{
		FullName:   values[FieldFullName],
		Email:      values[FieldEmail],
		Phone:      values[FieldPhone],
		Address:    values[FieldAddress],
		City:       values[FieldCity],
		PostalCode: values[FieldPostalCode],
	}
}
