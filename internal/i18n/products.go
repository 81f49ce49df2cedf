package i18n

import (
	"regexp"

	"mars_shop/internal/models"
)

// Noms exacts des produits du catalogue de démonstration.
var productNames = map[string]entry{
	"Wireless Bluetooth Headphones": {"Wireless Bluetooth Headphones", "Écouteurs Bluetooth Sans Fil", "سماعات بلوتوث لاسلكية"},
	"Smart Watch Pro":               {"Smart Watch Pro", "Montre Intelligente Pro", "ساعة ذكية برو"},
	"Premium Cotton T-Shirt":        {"Premium Cotton T-Shirt", "T-Shirt en Coton Premium", "تي شيرت قطني بريميوم"},
	"Designer Sunglasses":           {"Designer Sunglasses", "Lunettes de Soleil Design", "نظارات شمسية مصممة"},
	"Coffee Maker Deluxe":           {"Coffee Maker Deluxe", "Machine à Café Deluxe", "آلة قهوة فاخرة"},
	"Yoga Mat Pro":                  {"Yoga Mat Pro", "Tapis de Yoga Pro", "سجادة يوغا برو"},
	"Programming Guide Book":        {"Programming Guide Book", "Livre Guide de Programmation", "كتاب دليل البرمجة"},
	"Luxury Face Cream":             {"Luxury Face Cream", "Crème de Visage Luxe", "كريم وجه فاخر"},
	"Gaming Laptop":                 {"Gaming Laptop", "Ordinateur Portable Gaming", "حاسوب محمول للألعاب"},
	"Wireless Charging Pad":         {"Wireless Charging Pad", "Socle de Charge Sans Fil", "لوحة شحن لاسلكية"},
}

type term struct {
	re *regexp.Regexp
	entry
}

func newTerm(key string, e entry) term {
	return term{re: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(key) + `\b`), entry: e}
}

// Les termes sont appliqués dans l'ordre, mot entier, sans tenir compte de la casse.
var productTerms = []term{
	newTerm("electronics", entry{"Electronics", "Électronique", "الإلكترونيات"}),
	newTerm("fashion", entry{"Fashion", "Mode", "الأزياء"}),
	newTerm("home", entry{"Home & Garden", "Maison et Jardin", "المنزل والحديقة"}),
	newTerm("sports", entry{"Sports", "Sport", "الرياضة"}),
	newTerm("books", entry{"Books", "Livres", "الكتب"}),
	newTerm("beauty", entry{"Beauty", "Beauté", "الجمال"}),
	newTerm("wireless", entry{"Wireless", "Sans fil", "لاسلكي"}),
	newTerm("bluetooth", entry{"Bluetooth", "Bluetooth", "بلوتوث"}),
	newTerm("headphones", entry{"Headphones", "Écouteurs", "سماعات الرأس"}),
	newTerm("smart", entry{"Smart", "Intelligent", "ذكي"}),
	newTerm("watch", entry{"Watch", "Montre", "ساعة"}),
	newTerm("pro", entry{"Pro", "Pro", "برو"}),
	newTerm("premium", entry{"Premium", "Premium", "بريميوم"}),
	newTerm("cotton", entry{"Cotton", "Coton", "قطن"}),
	newTerm("designer", entry{"Designer", "Designer", "مصمم"}),
	newTerm("sunglasses", entry{"Sunglasses", "Lunettes de soleil", "نظارات شمسية"}),
	newTerm("coffee", entry{"Coffee", "Café", "قهوة"}),
	newTerm("maker", entry{"Maker", "Machine", "آلة"}),
	newTerm("deluxe", entry{"Deluxe", "De luxe", "فاخر"}),
	newTerm("yoga", entry{"Yoga", "Yoga", "يوغا"}),
	newTerm("mat", entry{"Mat", "Tapis", "سجادة"}),
	newTerm("programming", entry{"Programming", "Programmation", "البرمجة"}),
	newTerm("guide", entry{"Guide", "Guide", "دليل"}),
	newTerm("book", entry{"Book", "Livre", "كتاب"}),
	newTerm("luxury", entry{"Luxury", "Luxe", "فاخر"}),
	newTerm("face", entry{"Face", "Visage", "وجه"}),
	newTerm("cream", entry{"Cream", "Crème", "كريم"}),
	newTerm("gaming", entry{"Gaming", "Gaming", "ألعاب"}),
	newTerm("laptop", entry{"Laptop", "Ordinateur portable", "حاسوب محمول"}),
	newTerm("charging", entry{"Charging", "Charge", "شحن"}),
	newTerm("pad", entry{"Pad", "Support", "لوحة"}),
	newTerm("high-quality", entry{"High-quality", "Haute qualité", "عالي الجودة"}),
	newTerm("noise cancellation", entry{"noise cancellation", "suppression du bruit", "إلغاء الضوضاء"}),
	newTerm("battery life", entry{"battery life", "autonomie de la batterie", "عمر البطارية"}),
	newTerm("perfect for", entry{"Perfect for", "Parfait pour", "مثالي لـ"}),
	newTerm("music lovers", entry{"music lovers", "les amateurs de musique", "عشاق الموسيقى"}),
	newTerm("professionals", entry{"professionals", "professionnels", "المحترفين"}),
	newTerm("health monitoring", entry{"health monitoring", "surveillance de la santé", "مراقبة الصحة"}),
	newTerm("gps tracking", entry{"GPS tracking", "suivi GPS", "تتبع GPS"}),
	newTerm("compatible with", entry{"compatible with", "compatible avec", "متوافق مع"}),
	newTerm("smartphones", entry{"smartphones", "smartphones", "الهواتف الذكية"}),
	newTerm("comfortable", entry{"Comfortable", "Confortable", "مريح"}),
	newTerm("stylish", entry{"stylish", "élégant", "أنيق"}),
	newTerm("multiple colors", entry{"multiple colors", "plusieurs couleurs", "ألوان متعددة"}),
	newTerm("organic cotton", entry{"organic cotton", "coton biologique", "قطن عضوي"}),
	newTerm("uv protection", entry{"UV protection", "protection UV", "حماية من الأشعة فوق البنفسجية"}),
	newTerm("polarized lenses", entry{"polarized lenses", "verres polarisés", "عدسات مستقطبة"}),
	newTerm("outdoor activities", entry{"outdoor activities", "activités de plein air", "الأنشطة الخارجية"}),
	newTerm("programmable", entry{"Programmable", "Programmable", "قابل للبرمجة"}),
	newTerm("built-in grinder", entry{"built-in grinder", "broyeur intégré", "مطحنة مدمجة"}),
	newTerm("thermal carafe", entry{"thermal carafe", "carafe thermique", "دورق حراري"}),
	newTerm("non-slip", entry{"Non-slip", "Antidérapant", "غير قابل للانزلاق"}),
	newTerm("extra cushioning", entry{"extra cushioning", "amorti supplémentaire", "توسيد إضافي"}),
	newTerm("carrying strap", entry{"carrying strap", "sangle de transport", "حزام حمل"}),
	newTerm("eco-friendly", entry{"Eco-friendly", "Écologique", "صديق للبيئة"}),
	newTerm("comprehensive", entry{"Comprehensive", "Complet", "شامل"}),
	newTerm("best practices", entry{"best practices", "meilleures pratiques", "أفضل الممارسات"}),
	newTerm("beginners", entry{"beginners", "débutants", "المبتدئين"}),
	newTerm("anti-aging", entry{"Anti-aging", "Anti-âge", "مضاد للشيخوخة"}),
	newTerm("natural ingredients", entry{"natural ingredients", "ingrédients naturels", "مكونات طبيعية"}),
	newTerm("all skin types", entry{"all skin types", "tous types de peau", "جميع أنواع البشرة"}),
	newTerm("high-performance", entry{"High-performance", "Haute performance", "عالي الأداء"}),
	newTerm("sleek design", entry{"sleek design", "design élégant", "تصميم أنيق"}),
	newTerm("led indicators", entry{"LED indicators", "indicateurs LED", "مؤشرات LED"}),
}

// TranslateCategory retourne le libellé d'une catégorie, ou son id s'il est inconnu.
func TranslateCategory(categoryID string, lang Language) string {
	if s := T(lang, "category."+categoryID); s != "category."+categoryID {
		return s
	}
	return categoryID
}

// TranslateText : nom exact connu, sinon remplacement terme à terme.
func TranslateText(text string, lang Language) string {
	lang = lang.orDefault()
	if text == "" || lang == English {
		return text
	}
	if e, ok := productNames[text]; ok {
		return e.get(lang)
	}
	out := text
	for _, t := range productTerms {
		out = t.re.ReplaceAllLiteralString(out, t.get(lang))
	}
	return out
}

// TranslateProduct traduit le nom et la description ; l'anglais renvoie le produit tel quel.
func TranslateProduct(p models.Product, lang Language) models.Product {
	if lang.orDefault() == English {
		return p
	}
	p.Name = TranslateText(p.Name, lang)
	p.Description = TranslateText(p.Description, lang)
	return p
}
