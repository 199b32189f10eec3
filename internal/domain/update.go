package domain

// ProductUpdate is a partial product modification. Nil fields are left
// untouched; the repository translates set fields into a $set document.
// Identifier, created_manually, created_at, and embedding fields are not
// client-writable; embeddings are maintained by the annotator commands.
type ProductUpdate struct {
	Gender       *string   `bson:"gender,omitempty" json:"gender"`
	MainCategory *string   `bson:"main_category,omitempty" json:"main_category"`
	SubCategory  *string   `bson:"sub_category,omitempty" json:"sub_category"`
	SKU          *string   `bson:"sku,omitempty" json:"sku"`
	Name         *string   `bson:"name,omitempty" json:"name"`
	Price        *float64  `bson:"price,omitempty" json:"price"`
	Description  *string   `bson:"description,omitempty" json:"description"`
	Sizes        *[]string `bson:"sizes,omitempty" json:"sizes"`
	Colors       *[]string `bson:"colors,omitempty" json:"colors"`
	Brand        *string   `bson:"brand,omitempty" json:"brand"`
	Designer     *bool     `bson:"designer,omitempty" json:"designer"`
	Material     *string   `bson:"material,omitempty" json:"material"`
	Images       *[]string `bson:"images,omitempty" json:"images"`
	Stock        *int      `bson:"stock,omitempty" json:"stock"`
	Availability *string   `bson:"availability,omitempty" json:"availability"`
	Rating       *float64  `bson:"rating,omitempty" json:"rating"`
	Reviews      *[]Review `bson:"reviews,omitempty" json:"reviews"`
	OnSale       *bool     `bson:"on_sale,omitempty" json:"on_sale"`
	PreOwned     *bool     `bson:"pre_owned,omitempty" json:"pre_owned"`
	Condition    *string   `bson:"condition,omitempty" json:"condition"`
	Sponsored    *bool     `bson:"sponsored,omitempty" json:"sponsored"`
	NewIn        *bool     `bson:"new_in,omitempty" json:"new_in"`
}

// IsEmpty reports whether the update modifies nothing.
func (u ProductUpdate) IsEmpty() bool {
	return u == (ProductUpdate{})
}
