// defaults.go - Built-in starter data seeded when no persisted state exists.
// The menu mirrors the original Fusion Eats counter: 16 products across the
// 8 fixed categories, with GBP prices.
package pos

import "github.com/shopspring/decimal"

func gbp(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultCatalog returns the starter menu. Ids 1-16 are pre-assigned; the
// catalog counter continues from 17.
func DefaultCatalog() *Catalog {
	seed := []Product{
		{ID: 1, Name: "Margherita", Price: gbp("8.99"), Description: "Classic cheese and tomato pizza with fresh basil", Image: "/images/margherita.png", Category: CategoryPizzas},
		{ID: 2, Name: "Pepperoni", Price: gbp("10.99"), Description: "Spicy pepperoni with mozzarella and tomato sauce", Image: "/images/pepperoni.png", Category: CategoryPizzas},
		{ID: 3, Name: "Quattro Stagioni", Price: gbp("12.99"), Description: "Four seasons pizza with artichokes, mushrooms, ham, and olives", Image: "/images/quattro-stagioni.png", Category: CategoryPizzas},
		{ID: 4, Name: "Fish & Chips", Price: gbp("12.99"), Description: "Golden battered cod with chips and mushy peas", Image: "/images/fish-and-chips.png", Category: CategoryTraditional},
		{ID: 5, Name: "Bangers & Mash", Price: gbp("9.99"), Description: "Traditional sausages with creamy mashed potatoes and gravy", Image: "/images/bangers-and-mash.png", Category: CategoryTraditional},
		{ID: 6, Name: "Chicken Nuggets", Price: gbp("5.99"), Description: "Crispy chicken nuggets with dipping sauce", Image: "/images/chicken-nuggets.png", Category: CategoryChippy},
		{ID: 7, Name: "Battered Sausage", Price: gbp("3.99"), Description: "Traditional battered sausage with chips", Image: "/images/battered-sausage.png", Category: CategoryChippy},
		{ID: 8, Name: "Veggie Delight", Price: gbp("9.99"), Description: "Assorted vegetables with cheese and tomato base", Image: "/images/veggie-delight.png", Category: CategorySpecials},
		{ID: 9, Name: "BBQ Feast", Price: gbp("14.99"), Description: "BBQ chicken, bacon, and peppers with BBQ sauce", Image: "/images/bbq-feast.png", Category: CategorySpecials},
		{ID: 10, Name: "Gluten-Free Pizza", Price: gbp("11.99"), Description: "Special gluten-free crust with toppings", Image: "/images/gluten-free-pizza.png", Category: CategoryGlutenFree},
		{ID: 11, Name: "Kids Burger", Price: gbp("4.99"), Description: "Mini burger with fries", Image: "/images/kids-burger.png", Category: CategoryKids},
		{ID: 12, Name: "Mini Pizza", Price: gbp("5.99"), Description: "Child-sized pizza with simple toppings", Image: "/images/mini-pizza.png", Category: CategoryKids},
		{ID: 13, Name: "Garlic Bread", Price: gbp("3.99"), Description: "Buttery garlic breadsticks", Image: "/images/garlic-bread.png", Category: CategorySides},
		{ID: 14, Name: "Onion Rings", Price: gbp("3.49"), Description: "Crispy golden onion rings with dipping sauce", Image: "/images/onion-rings.png", Category: CategorySides},
		{ID: 15, Name: "Cola", Price: gbp("1.50"), Description: "Refreshing cola drink", Image: "/images/cola.png", Category: CategoryDrinks},
		{ID: 16, Name: "Orange Juice", Price: gbp("2.00"), Description: "Fresh squeezed orange juice", Image: "/images/orange-juice.png", Category: CategoryDrinks},
	}

	buckets := make(map[Category][]Product, len(Categories))
	for _, p := range seed {
		buckets[p.Category] = append(buckets[p.Category], p)
	}
	return NewCatalogFromBuckets(buckets)
}
