package products

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
)

func TestFormInputParsesFields(t *testing.T) {
	f := Form{
		Name:           " PowerEdge R750 ",
		Price:          "245000.50",
		StockQuantity:  "4",
		Brand:          "Dell",
		Type:           "SERVER",
		CategoryID:     3,
		ImageURLs:      "https://img/1.png\n\n https://img/2.png ",
		Specifications: "CPU: Xeon Gold\nRAM : 64GB\nno colon here",
		Active:         true,
	}

	in, err := f.Input()
	require.NoError(t, err)
	assert.Equal(t, "PowerEdge R750", in.Name)
	assert.True(t, decimal.RequireFromString("245000.5").Equal(in.Price))
	assert.Equal(t, 4, in.StockQuantity)
	assert.Equal(t, enums.ProductTypeServer, in.Type)
	require.NotNil(t, in.Category)
	assert.Equal(t, int64(3), in.Category.ID)
	assert.Equal(t, []string{"https://img/1.png", "https://img/2.png"}, in.ImageURLs)
	assert.Equal(t, map[string]string{"CPU": "Xeon Gold", "RAM": "64GB"}, in.Specifications)
}

func TestFormInputCollectsAllFieldErrors(t *testing.T) {
	_, err := Form{Price: "abc", StockQuantity: "x", Type: "TOASTER"}.Input()
	require.Error(t, err)

	fields := pkgerrors.As(err).FieldErrors()
	assert.Equal(t, "must be a number", fields["price"])
	assert.Equal(t, "must be a whole number", fields["stockQuantity"])
	assert.Equal(t, "is invalid", fields["type"])
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["brand"])
}

func TestFormInputRejectsZeroPrice(t *testing.T) {
	f := NewForm()
	f.Name, f.Brand, f.Price = "Thing", "Acme", "0"
	_, err := f.Input()
	assert.Equal(t, "must be greater than 0", pkgerrors.As(err).FieldErrors()["price"])
}

func TestFormFromRoundTripsProduct(t *testing.T) {
	p := types.Product{
		Name:           "ThinkPad",
		Price:          decimal.NewFromInt(90000),
		StockQuantity:  2,
		Brand:          "Lenovo",
		Type:           enums.ProductTypeLaptop,
		ImageURLs:      []string{"a", "b"},
		Specifications: map[string]string{"RAM": "16GB", "CPU": "i7"},
		Category:       &types.Category{ID: 9},
		Featured:       true,
	}
	f := FormFrom(p)
	assert.Equal(t, "90000.00", f.Price)
	assert.Equal(t, "a\nb", f.ImageURLs)
	assert.Equal(t, "CPU: i7\nRAM: 16GB", f.Specifications)
	assert.Equal(t, int64(9), f.CategoryID)

	in, err := f.Input()
	require.NoError(t, err)
	assert.Equal(t, p.Specifications, in.Specifications)
	assert.True(t, in.Featured)
}
