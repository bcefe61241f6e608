package catalog

import "github.com/Sule971/luxe-vogue-boutique/internal/domain"

const imageParams = "?ixlib=rb-1.2.1&auto=format&fit=crop&w=668&q=80"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + imageParams
}

var seedProducts = []domain.Product{
	{
		ID:          "1",
		Name:        "Luminous Silk Evening Gown",
		Description: "A stunning silk gown with delicate beadwork that catches the light. Perfect for red carpet events and gala dinners.",
		Price:       249999,
		Image:       unsplash("photo-1595777457583-95e059d581b8"),
		Category:    "dresses",
		Gender:      domain.GenderWomen,
		Collection:  "evening",
		Featured:    true,
	},
	{
		ID:          "2",
		Name:        "Designer Leather Combat Boots",
		Description: "Edgy combat boots made with premium Italian leather, featuring gold hardware and signature red soles.",
		Price:       129999,
		Image:       unsplash("photo-1605812860427-4024433a70fd"),
		Category:    "footwear",
		Gender:      domain.GenderWomen,
		Collection:  "autumn",
	},
	{
		ID:          "3",
		Name:        "Tailored Italian Wool Suit",
		Description: "Impeccably tailored suit crafted from the finest Italian wool. Features a modern slim fit with subtle check pattern.",
		Price:       349999,
		Image:       unsplash("photo-1593032465175-481ac7f401a0"),
		Category:    "suits",
		Gender:      domain.GenderMen,
		Collection:  "business",
		Featured:    true,
	},
	{
		ID:          "4",
		Name:        "Luxury Cashmere Overcoat",
		Description: "Stay stylish in colder weather with this premium cashmere overcoat, featuring a timeless silhouette and exquisite craftsmanship.",
		Price:       425000,
		Image:       unsplash("photo-1544022613-e87ca75a784a"),
		Category:    "outerwear",
		Gender:      domain.GenderMen,
		Collection:  "winter",
	},
	{
		ID:          "5",
		Name:        "Embellished Couture Handbag",
		Description: "A statement accessory crafted from the finest leather with signature hardware and hand-applied crystal embellishments.",
		Price:       899999,
		Image:       unsplash("photo-1584917865442-de89df76afd3"),
		Category:    "accessories",
		Gender:      domain.GenderWomen,
		Collection:  "accessories",
	},
	{
		ID:          "6",
		Name:        "Limited Edition Sneakers",
		Description: "These exclusive sneakers blend luxury and street style with premium materials and distinctive design features.",
		Price:       89500,
		Image:       unsplash("photo-1579338559194-a162d19bf842"),
		Category:    "footwear",
		Gender:      domain.GenderUnisex,
		Collection:  "streetwear",
		Featured:    true,
	},
	{
		ID:          "7",
		Name:        "Silk Designer Scarf",
		Description: "Hand-painted silk scarf featuring the season's signature print and hand-rolled edges.",
		Price:       45000,
		Image:       unsplash("photo-1584917865442-de89df76afd3"),
		Category:    "accessories",
		Gender:      domain.GenderWomen,
		Collection:  "accessories",
	},
	{
		ID:          "8",
		Name:        "Designer Denim Jacket",
		Description: "Iconic denim jacket featuring vintage-inspired wash and distinctive embroidered details on the back.",
		Price:       175000,
		Image:       unsplash("photo-1578681994506-b8f463449011"),
		Category:    "outerwear",
		Gender:      domain.GenderUnisex,
		Collection:  "casual",
	},
	{
		ID:          "9",
		Name:        "Crystal-Embellished Heels",
		Description: "Statement heels featuring dazzling crystal embellishments that catch the light with every step.",
		Price:       249999,
		Image:       unsplash("photo-1543163521-1bf539c55dd2"),
		Category:    "footwear",
		Gender:      domain.GenderWomen,
		Collection:  "evening",
	},
	{
		ID:          "10",
		Name:        "Signature Leather Loafers",
		Description: "Classic loafers handcrafted in Italy from the finest calf leather with signature horse-bit detail.",
		Price:       89500,
		Image:       unsplash("photo-1614252235316-8c857d38b5f4"),
		Category:    "footwear",
		Gender:      domain.GenderMen,
		Collection:  "business",
	},
	{
		ID:          "11",
		Name:        "Monogram Belt",
		Description: "Iconic belt featuring signature hardware and premium leather, the perfect finishing touch to any outfit.",
		Price:       49000,
		Image:       unsplash("photo-1603223792137-c0a3f4817b79"),
		Category:    "accessories",
		Gender:      domain.GenderUnisex,
		Collection:  "accessories",
	},
	{
		ID:          "12",
		Name:        "Couture Cocktail Dress",
		Description: "Stunning cocktail dress featuring intricate beadwork and a flattering silhouette perfect for special occasions.",
		Price:       395000,
		Image:       unsplash("photo-1566174053879-31528523f8ae"),
		Category:    "dresses",
		Gender:      domain.GenderWomen,
		Collection:  "evening",
	},
}

var seedCollections = []domain.Collection{
	{
		ID:          "1",
		Name:        "Evening Elegance",
		Description: "Exquisite evening wear designed for those unforgettable moments. From gala events to award ceremonies, make a statement with our curated selection of red-carpet-worthy pieces.",
		Image:       unsplash("photo-1529139574466-a303027c1d8b"),
		Gender:      domain.GenderWomen,
	},
	{
		ID:          "2",
		Name:        "Business Elite",
		Description: "Command respect with our impeccably tailored business collection. Each piece is crafted to perfection, ensuring you make the right impression from boardroom to business dinner.",
		Image:       unsplash("photo-1507679799987-c73779587ccf"),
		Gender:      domain.GenderMen,
	},
	{
		ID:          "3",
		Name:        "Winter Luxe",
		Description: "Embrace the colder months without compromising on style. Our winter collection features sumptuous fabrics and expert craftsmanship to keep you warm and sophisticated.",
		Image:       unsplash("photo-1485968579580-b6d095142e6e"),
		Gender:      domain.GenderWomen,
	},
	{
		ID:          "4",
		Name:        "Urban Streetwear",
		Description: "Where luxury meets street style. Our urban collection fuses high-end craftsmanship with contemporary street aesthetics for the fashion-forward trendsetter.",
		Image:       unsplash("photo-1509551388413-e18d0ac5d495"),
		Gender:      domain.GenderMen,
	},
}
