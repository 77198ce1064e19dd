package model

// MarketplaceItem is one entry of the static shop catalog. Catalog contents
// are display data; pairing advice accepts any item name.
type MarketplaceItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageRef string `json:"image_ref"`
	Category string `json:"category"`
}

// MarketplaceCatalog returns the built-in catalog.
func MarketplaceCatalog() []MarketplaceItem {
	return []MarketplaceItem{
		{ID: "m1", Name: "Premium Linen Blazer", Price: "$189", ImageRef: "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?auto=format&fit=crop&q=80&w=400", Category: CategoryOuterwear},
		{ID: "m2", Name: "Raw Denim Straight Leg", Price: "$120", ImageRef: "https://images.unsplash.com/photo-1542272604-787c3835535d?auto=format&fit=crop&q=80&w=400", Category: CategoryBottoms},
		{ID: "m3", Name: "Silk Button Down", Price: "$145", ImageRef: "https://images.unsplash.com/photo-1598033129183-c4f50c7176c8?auto=format&fit=crop&q=80&w=400", Category: CategoryTops},
		{ID: "m4", Name: "Chelsea Leather Boots", Price: "$210", ImageRef: "https://images.unsplash.com/photo-1638247025967-b4e38f787b76?auto=format&fit=crop&q=80&w=400", Category: CategoryShoes},
	}
}
