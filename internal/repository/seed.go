package repository

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"mars_shop/internal/apperr"
	"mars_shop/internal/models"
)

func unsplash(ids ...string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = "https://images.unsplash.com/photo-" + id + "?w=500&h=500&fit=crop"
	}
	return out
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t.UTC()
}

var demoCategories = []models.Category{
	{ID: "electronics", Name: "Electronics", Description: "Latest gadgets and electronic devices", Icon: "📱"},
	{ID: "fashion", Name: "Fashion", Description: "Trendy clothing and accessories", Icon: "👕"},
	{ID: "home", Name: "Home & Garden", Description: "Home decor and garden essentials", Icon: "🏠"},
	{ID: "sports", Name: "Sports", Description: "Sports equipment and fitness gear", Icon: "⚽"},
	{ID: "books", Name: "Books", Description: "Books and educational materials", Icon: "📚"},
	{ID: "beauty", Name: "Beauty", Description: "Cosmetics and personal care", Icon: "💄"},
}

var demoProducts = []models.Product{
	{ID: "1", Name: "Wireless Bluetooth Headphones", Price: decimal.RequireFromString("270.5"), Category: "electronics", Stock: 15, Featured: true, CreatedAt: day("2024-01-15"),
		Description: "High-quality wireless headphones with noise cancellation and 30-hour battery life. Perfect for music lovers and professionals.",
		Images:      unsplash("1505740420928-5e560c06d30e", "1484704849700-f032a568e944")},
	{ID: "2", Name: "Smart Watch Pro", Price: decimal.NewFromInt(750), Category: "electronics", Stock: 8, Featured: true, CreatedAt: day("2024-01-10"),
		Description: "Advanced smartwatch with health monitoring, GPS tracking, and 7-day battery life. Compatible with all smartphones.",
		Images:      unsplash("1523275335684-37898b6baf30", "1434493789847-2f02dc6ca35d")},
	{ID: "3", Name: "Premium Cotton T-Shirt", Price: decimal.NewFromInt(75), Category: "fashion", Stock: 25, CreatedAt: day("2024-01-20"),
		Description: "Comfortable and stylish cotton t-shirt available in multiple colors. Made from 100% organic cotton.",
		Images:      unsplash("1521572163474-6864f9cf17ab", "1576566588028-4147f3842f27")},
	{ID: "4", Name: "Designer Sunglasses", Price: decimal.NewFromInt(240), Category: "fashion", Stock: 12, Featured: true, CreatedAt: day("2024-01-18"),
		Description: "Stylish sunglasses with UV protection and polarized lenses. Perfect for outdoor activities and fashion.",
		Images:      unsplash("1572635196237-14b3f281503f", "1511499767150-a48a237f0083")},
	{ID: "5", Name: "Coffee Maker Deluxe", Price: decimal.NewFromInt(480), Category: "home", Stock: 6, CreatedAt: day("2024-01-12"),
		Description: "Programmable coffee maker with built-in grinder and thermal carafe. Makes perfect coffee every time.",
		Images:      unsplash("1495474472287-4d71bcdd2085", "1559305616-ee3822c46b5b")},
	{ID: "6", Name: "Yoga Mat Pro", Price: decimal.NewFromInt(120), Category: "sports", Stock: 20, CreatedAt: day("2024-01-25"),
		Description: "Non-slip yoga mat with extra cushioning and carrying strap. Eco-friendly and durable material.",
		Images:      unsplash("1544367567-0f2fcb009e0b", "1506629905607-d7f8b4e7f21c")},
	{ID: "7", Name: "Programming Guide Book", Price: decimal.NewFromInt(138), Category: "books", Stock: 30, CreatedAt: day("2024-01-22"),
		Description: "Comprehensive guide to modern programming languages and best practices. Perfect for beginners and professionals.",
		Images:      unsplash("1544716278-ca5e3f4abd8c", "1507003211169-0a1dd7228f2d")},
	{ID: "8", Name: "Luxury Face Cream", Price: decimal.NewFromInt(210), Category: "beauty", Stock: 18, Featured: true, CreatedAt: day("2024-01-28"),
		Description: "Anti-aging face cream with natural ingredients and SPF protection. Suitable for all skin types.",
		Images:      unsplash("1556228720-195a672e8a03", "1571019613454-1cb2f99b2d8b")},
	{ID: "9", Name: "Gaming Laptop", Price: decimal.NewFromInt(3900), Category: "electronics", Stock: 4, Featured: true, CreatedAt: day("2024-01-30"),
		Description: "High-performance gaming laptop with RTX graphics and 16GB RAM. Perfect for gaming and professional work.",
		Images:      unsplash("1496181133206-80ce9b88a853", "1525547719571-a2d4ac8945e2")},
	{ID: "10", Name: "Wireless Charging Pad", Price: decimal.NewFromInt(90), Category: "electronics", Stock: 22, CreatedAt: day("2024-02-01"),
		Description: "Fast wireless charging pad compatible with all Qi-enabled devices. Sleek design with LED indicators.",
		Images:      unsplash("1586953208448-b95a79798f07", "1593359677879-a4bb92f829d1")},
}

// DemoProducts retourne une copie du catalogue de démonstration.
func DemoProducts() []models.Product {
	out := make([]models.Product, len(demoProducts))
	copy(out, demoProducts)
	return out
}

// SeedCatalog insère les catégories et produits de démonstration absents.
func SeedCatalog(ctx context.Context, repos Repositories) error {
	created := 0
	for _, c := range demoCategories {
		err := repos.Categories.Create(ctx, c)
		if apperr.Is(err, apperr.KindConflict) {
			continue
		}
		if err != nil {
			return err
		}
		created++
	}
	for _, p := range demoProducts {
		p.UpdatedAt = p.CreatedAt
		err := repos.Products.Create(ctx, p)
		if apperr.Is(err, apperr.KindConflict) {
			continue
		}
		if err != nil {
			return err
		}
		created++
	}
	log.Printf("🌱 Catalogue de démonstration : %d éléments insérés", created)
	return nil
}
