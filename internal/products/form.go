package products

import (
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/validation"
	"github.com/shopspring/decimal"
)

// Form is the admin product form as the browser posts it.
type Form struct {
	Name           string
	Description    string
	Price          string
	StockQuantity  string
	Brand          string
	Model          string
	Type           string
	CategoryID     int64
	ImageURLs      string
	Specifications string
	Active         bool
	Featured       bool
}

// NewForm is the blank create form.
func NewForm() Form {
	return Form{StockQuantity: "0", Type: string(enums.ProductTypeServer), Active: true}
}

// FormFrom pre-fills the edit form.
func FormFrom(p types.Product) Form {
	return Form{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		StockQuantity:  strconv.Itoa(p.StockQuantity),
		Brand:          p.Brand,
		Model:          p.Model,
		Type:           string(p.Type),
		CategoryID:     p.CategoryID(),
		ImageURLs:      strings.Join(p.ImageURLs, "\n"),
		Specifications: formatSpecifications(p.Specifications),
		Active:         p.Active,
		Featured:       p.Featured,
	}
}

// Input converts the form into the backend payload. All field problems are reported together.
func (f Form) Input() (ProductInput, error) {
	fields := map[string]string{}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	switch {
	case strings.TrimSpace(f.Price) == "":
		fields["price"] = "is required"
	case err != nil:
		fields["price"] = "must be a number"
	case !price.IsPositive():
		fields["price"] = "must be greater than 0"
	}

	stock, err := strconv.Atoi(strings.TrimSpace(f.StockQuantity))
	if err != nil {
		fields["stockQuantity"] = "must be a whole number"
	}

	productType, err := enums.ParseProductType(f.Type)
	if err != nil {
		fields["type"] = "is invalid"
	}

	input := ProductInput{
		Name:           strings.TrimSpace(f.Name),
		Description:    strings.TrimSpace(f.Description),
		Price:          price,
		StockQuantity:  stock,
		Brand:          strings.TrimSpace(f.Brand),
		Model:          strings.TrimSpace(f.Model),
		Type:           productType,
		ImageURLs:      parseLines(f.ImageURLs),
		Specifications: parseSpecifications(f.Specifications),
		Active:         f.Active,
		Featured:       f.Featured,
	}.WithCategory(f.CategoryID)

	if err := validation.Struct(input); err != nil {
		for k, v := range pkgerrors.As(err).FieldErrors() {
			if _, taken := fields[k]; !taken {
				fields[k] = v
			}
		}
	}
	if len(fields) > 0 {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fields)
	}
	return input, nil
}

func parseLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseSpecifications reads "key: value" lines. Lines without a colon are skipped.
func parseSpecifications(raw string) map[string]string {
	out := map[string]string{}
	for _, line := range parseLines(raw) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if key = strings.TrimSpace(key); key != "" {
			out[key] = strings.TrimSpace(value)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func formatSpecifications(specs map[string]string) string {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+specs[k])
	}
	return strings.Join(lines, "\n")
}
