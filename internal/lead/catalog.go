package lead

// CatalogOption is a fixed unit-type interest choice offered in the
// lead forms. Disabled options (sold out) stay visible in the UI but
// can never enter a submitted lead.
type CatalogOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

var unitTypeCatalog = []CatalogOption{
	{Label: "2 BHK (Sold Out)", Value: "2 BHK (Sold Out)", Disabled: true},
	{Label: "3 BHK (Filling Fast)", Value: "3 BHK (Filling Fast)"},
	{Label: "4 BHK (Available)", Value: "4 BHK (Available)"},
	{Label: "4+ BHK (Available)", Value: "4+ BHK (Available)"},
	{Label: "3 BHK + 3 Toilets (Filling Fast)", Value: "3 BHK + 3 Toilets (Filling Fast)"},
	{Label: "3 BHK + Store (Available)", Value: "3 BHK + Store (Available)"},
}

// Catalog returns the selectable unit-type options.
func Catalog() []CatalogOption {
	options := make([]CatalogOption, len(unitTypeCatalog))
	copy(options, unitTypeCatalog)
	return options
}

func lookupOption(value string) (CatalogOption, bool) {
	for _, opt := range unitTypeCatalog {
		if opt.Value == value {
			return opt, true
		}
	}
	return CatalogOption{}, false
}
