package models

import (
	"testing"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	require.True(t, domain.IsValidation(err), "want validation error, got %v", err)
	var ve domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Field
}

func TestPartnerFormRejectsPlaceholder(t *testing.T) {
	f := PartnerForm{Name: "Acme"}
	f.Logo.Stage(upload.File{Name: "logo.png"})

	_, err := f.Build()
	assert.Equal(t, "logo", fieldOf(t, err))
	assert.ErrorIs(t, err, upload.ErrUnresolved)

	f.Logo.Set("https://cdn.example.com/logo.png")
	in, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, PartnerInput{Name: "Acme", Logo: "https://cdn.example.com/logo.png"}, in)
}

func TestPartnerFormRequiresLogo(t *testing.T) {
	_, err := PartnerForm{Name: "Acme"}.Build()
	assert.Equal(t, "logo", fieldOf(t, err))
}

func TestOfficeFormValidation(t *testing.T) {
	ok := OfficeForm{Name: " HQ ", Hotline: "1900", Fax: "028", Address: "Street 1", Email: "hq@example.com"}
	in, err := ok.Build()
	require.NoError(t, err)
	assert.Equal(t, "HQ", in.Name)

	bad := ok
	bad.Email = "not-an-email"
	_, err = bad.Build()
	assert.Equal(t, "email", fieldOf(t, err))

	missing := ok
	missing.Fax = "  "
	_, err = missing.Build()
	assert.Equal(t, "fax", fieldOf(t, err))
}

func TestPriceFormDefaults(t *testing.T) {
	in, err := PriceForm{Name: "Basic", DefaultPrice: 100, Currency: "EUR"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "VND", in.Currency)
	assert.Equal(t, "month", in.Unit)

	in, err = PriceForm{Name: "Basic", DefaultPrice: 100, Currency: "USD", Unit: "year"}.Build()
	require.NoError(t, err)
	assert.Equal(t, "USD", in.Currency)
	assert.Equal(t, "year", in.Unit)

	_, err = PriceForm{Name: "Basic"}.Build()
	assert.Equal(t, "defaultPrice", fieldOf(t, err))
	_, err = PriceForm{Name: "Basic", DefaultPrice: 1, SalePrice: -1}.Build()
	assert.Equal(t, "salePrice", fieldOf(t, err))
}

func TestQaAFormTrimsAndRequiresAnswer(t *testing.T) {
	in, err := QaAForm{Question: " How long? ", Answer: " A week "}.Build()
	require.NoError(t, err)
	assert.Equal(t, QaAInput{Question: "How long?", Answer: "A week"}, in)

	_, err = QaAForm{Question: "How long?", Answer: " "}.Build()
	assert.Equal(t, "answer", fieldOf(t, err))
}

func TestServicePackFormValidation(t *testing.T) {
	in, err := ServicePackForm{ID: "sp1", Name: " Gold ", Key: "gold", Price: 500}.Build()
	require.NoError(t, err)
	assert.Equal(t, ServicePackInput{ID: "sp1", Name: "Gold", Key: "gold", Price: 500}, in)

	_, err = ServicePackForm{Name: "Gold"}.Build()
	assert.Equal(t, "key", fieldOf(t, err))
	_, err = ServicePackForm{Name: "Gold", Key: "gold", Price: -1}.Build()
	assert.Equal(t, "price", fieldOf(t, err))
}

func TestProductFormRequiresServicePacks(t *testing.T) {
	f := ProductForm{Key: "crm", Name: "CRM", Category: "c1", ServicePacks: []string{" "}}
	f.Thumbnail.Set("https://cdn.example.com/t.png")
	_, err := f.Build()
	assert.Equal(t, "servicePacks", fieldOf(t, err))

	f.ServicePacks = []string{" p1 ", ""}
	in, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, in.ServicePacks)
	assert.Equal(t, []string{}, in.Advantages)
}

func TestInformationFormSlotsAndGallery(t *testing.T) {
	f := InformationForm{
		Page: "home", Title: "About", Subtitle: "Us",
		Variants: []VariantForm{{Title: "v1"}, {Title: "v2"}},
		Assets:   upload.NewGallery("https://cdn.example.com/a.png"),
	}
	keys := []string{}
	for _, s := range f.Slots() {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"assets", "variants.0.image", "variants.1.image"}, keys)

	require.NoError(t, upload.Stage(&f, "assets", upload.File{Name: "b.png"}))
	_, err := f.Build()
	assert.Equal(t, "assets", fieldOf(t, err))
	assert.True(t, upload.Pending(&f))

	f.Assets = upload.NewGallery("https://cdn.example.com/a.png", "https://cdn.example.com/b.png")
	in, err := f.Build()
	require.NoError(t, err)
	assert.Len(t, in.Assets, 2)
	assert.Len(t, in.Variants, 2)
	assert.Empty(t, in.Variants[0].Image)
}

func TestPageFormCarouselSlots(t *testing.T) {
	f := PageForm{Name: "home", Title: "Home", Carousel: []CarouselSlide{{Title: "s1"}}}
	require.NoError(t, upload.Stage(&f, "carousel.0.image", upload.File{Name: "s.png"}))
	assert.True(t, domain.IsPreview(f.Carousel[0].Image.Value()))

	_, err := f.Build()
	assert.Equal(t, "carousel.0.image", fieldOf(t, err))

	f.Carousel[0].Image.Set("https://cdn.example.com/s.png")
	in, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/s.png", in.Carousel[0].Image)
}

func TestOperatorToPublicHidesHash(t *testing.T) {
	o := Operator{ID: 3, Username: "ed", PasswordHash: "x", Role: RoleEditor}
	p := o.ToPublic()
	assert.Equal(t, PublicOperator{ID: 3, Username: "ed", Role: RoleEditor}, p)
}

func TestFeedOrder(t *testing.T) {
	field, order := FeedOrder(FeedPopular)
	assert.Equal(t, "view", field)
	assert.Equal(t, domain.OrderDesc, order)

	field, order = FeedOrder(FeedOldest)
	assert.Equal(t, "createdAt", field)
	assert.Equal(t, domain.OrderAsc, order)

	_, order = FeedOrder("whatever")
	assert.Equal(t, domain.OrderDesc, order)
}
