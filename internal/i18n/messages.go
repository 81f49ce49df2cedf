package i18n

type entry struct {
	en, fr, ar string
}

func (e entry) get(lang Language) string {
	switch lang {
	case French:
		return e.fr
	case Arabic:
		return e.ar
	default:
		return e.en
	}
}

var messages = map[string]entry{
	// navigation
	"nav.home":        {"Home", "Accueil", "الرئيسية"},
	"nav.marketplace": {"Marketplace", "Marché", "السوق"},
	"nav.about":       {"About", "À propos", "حول المتجر"},
	"nav.cart":        {"Cart", "Panier", "السلة"},
	"nav.account":     {"Account", "Compte", "الحساب"},
	"nav.admin":       {"Admin", "Admin", "الإدارة"},

	"home.title":          {"Mars Shop", "Mars Shop", "متجر مارس"},
	"home.subtitle":       {"Your Premier Marketplace", "Votre Marché Premier", "السوق الرائد"},
	"home.selectLanguage": {"Select Language", "Choisir la langue", "اختر اللغة"},
	"home.continue":       {"Continue to Marketplace", "Continuer vers le marché", "متابعة إلى السوق"},

	"common.save":     {"Save", "Enregistrer", "حفظ"},
	"common.cancel":   {"Cancel", "Annuler", "إلغاء"},
	"common.delete":   {"Delete", "Supprimer", "حذف"},
	"common.edit":     {"Edit", "Modifier", "تعديل"},
	"common.view":     {"View", "Voir", "عرض"},
	"common.add":      {"Add", "Ajouter", "إضافة"},
	"common.remove":   {"Remove", "Supprimer", "إزالة"},
	"common.close":    {"Close", "Fermer", "إغلاق"},
	"common.loading":  {"Loading...", "Chargement...", "جاري التحميل..."},
	"common.search":   {"Search", "Rechercher", "بحث"},
	"common.filter":   {"Filter", "Filtrer", "تصفية"},
	"common.clear":    {"Clear", "Effacer", "مسح"},
	"common.submit":   {"Submit", "Soumettre", "إرسال"},
	"common.back":     {"Back", "Retour", "العودة"},
	"common.next":     {"Next", "Suivant", "التالي"},
	"common.previous": {"Previous", "Précédent", "السابق"},
	"common.yes":      {"Yes", "Oui", "نعم"},
	"common.no":       {"No", "Non", "لا"},

	"marketplace.searchPlaceholder": {"Search products...", "Rechercher des produits...", "البحث عن المنتجات..."},
	"marketplace.allCategories":     {"All Categories", "Toutes les catégories", "جميع الفئات"},
	"marketplace.noProducts":        {"No products found", "Aucun produit trouvé", "لم يتم العثور على منتجات"},
	"marketplace.addToCart":         {"Add to Cart", "Ajouter au panier", "أضف إلى السلة"},
	"marketplace.featuredProducts":  {"Featured Products", "Produits en vedette", "المنتجات المميزة"},
	"marketplace.categories":        {"Categories", "Catégories", "الفئات"},
	"marketplace.sortBy":            {"Sort by", "Trier par", "ترتيب حسب"},
	"marketplace.featuredFirst":     {"Featured First", "Vedette d'abord", "المميز أولاً"},
	"marketplace.newest":            {"Newest First", "Le plus récent d'abord", "الأحدث أولاً"},
	"marketplace.priceLowHigh":      {"Price: Low to High", "Prix: Bas à Élevé", "السعر: من الأقل إلى الأعلى"},
	"marketplace.priceHighLow":      {"Price: High to Low", "Prix: Élevé à Bas", "السعر: من الأعلى إلى الأقل"},
	"marketplace.nameAZ":            {"Name A-Z", "Nom A-Z", "الاسم أ-ي"},
	"marketplace.shopByCategory":    {"Shop by Category", "Acheter par Catégorie", "تسوق حسب الفئة"},

	"product.price":       {"Price", "Prix", "السعر"},
	"product.stock":       {"In Stock", "En stock", "متوفر"},
	"product.outOfStock":  {"Out of Stock", "Rupture de stock", "غير متوفر"},
	"product.quantity":    {"Quantity", "Quantité", "الكمية"},
	"product.orderNow":    {"Order Now", "Commander maintenant", "اطلب الآن"},
	"product.description": {"Description", "Description", "الوصف"},
	"product.category":    {"Category", "Catégorie", "الفئة"},
	"product.featured":    {"Featured", "En vedette", "مميز"},

	"currency.symbol": {"TND", "TND", "د.ت"},

	"category.electronics": {"Electronics", "Électronique", "الإلكترونيات"},
	"category.fashion":     {"Fashion", "Mode", "الأزياء"},
	"category.home":        {"Home & Garden", "Maison et Jardin", "المنزل والحديقة"},
	"category.sports":      {"Sports", "Sport", "الرياضة"},
	"category.books":       {"Books", "Livres", "الكتب"},
	"category.beauty":      {"Beauty", "Beauté", "الجمال"},

	"order.title":      {"Place Your Order", "Passer votre commande", "اطلب الآن"},
	"order.name":       {"Full Name", "Nom complet", "الاسم الكامل"},
	"order.phone":      {"Phone Number", "Numéro de téléphone", "رقم الهاتف"},
	"order.address":    {"Address", "Adresse", "العنوان"},
	"order.addToCart":  {"Add to Cart", "Ajouter au panier", "أضف إلى السلة"},
	"order.placeOrder": {"Place Order", "Passer la commande", "تأكيد الطلب"},
	"order.success":    {"Order received! We will contact you soon.", "Commande reçue ! Nous vous contacterons bientôt.", "تم استلام الطلب! سنتواصل معك قريباً."},

	"cart.title":            {"Shopping Cart", "Panier", "سلة التسوق"},
	"cart.empty":            {"Your cart is empty", "Votre panier est vide", "سلة التسوق فارغة"},
	"cart.total":            {"Total", "Total", "المجموع"},
	"cart.checkout":         {"Checkout", "Finaliser", "إتمام الشراء"},
	"cart.remove":           {"Remove", "Supprimer", "حذف"},
	"cart.items":            {"items", "articles", "عنصر"},
	"cart.item":             {"item", "article", "عنصر"},
	"cart.continueShopping": {"Continue Shopping", "Continuer les achats", "متابعة التسوق"},

	"account.login":           {"Login", "Se connecter", "تسجيل الدخول"},
	"account.register":        {"Register", "S'inscrire", "إنشاء حساب"},
	"account.logout":          {"Logout", "Se déconnecter", "تسجيل الخروج"},
	"account.profile":         {"Profile", "Profil", "الملف الشخصي"},
	"account.email":           {"Email", "Email", "البريد الإلكتروني"},
	"account.save":            {"Save", "Enregistrer", "حفظ"},
	"account.password":        {"Password", "Mot de passe", "كلمة المرور"},
	"account.confirmPassword": {"Confirm Password", "Confirmer le mot de passe", "تأكيد كلمة المرور"},
	"account.createAccount":   {"Create Account", "Créer un compte", "إنشاء حساب"},

	"admin.dashboard":     {"Dashboard", "Tableau de bord", "لوحة التحكم"},
	"admin.products":      {"Products", "Produits", "المنتجات"},
	"admin.orders":        {"Orders", "Commandes", "الطلبات"},
	"admin.users":         {"Users", "Utilisateurs", "المستخدمون"},
	"admin.settings":      {"Settings", "Paramètres", "الإعدادات"},
	"admin.totalRevenue":  {"Total Revenue", "Revenus totaux", "إجمالي الإيرادات"},
	"admin.totalOrders":   {"Total Orders", "Commandes totales", "إجمالي الطلبات"},
	"admin.totalProducts": {"Total Products", "Produits totaux", "إجمالي المنتجات"},
	"admin.totalUsers":    {"Total Users", "Utilisateurs totaux", "إجمالي المستخدمين"},
	"admin.recentOrders":  {"Recent Orders", "Commandes récentes", "الطلبات الأخيرة"},
	"admin.mostDemanded":  {"Most Demanded Products", "Produits les plus demandés", "المنتجات الأكثر طلباً"},

	"status.pending":    {"Pending", "En attente", "معلق"},
	"status.confirmed":  {"Confirmed", "Confirmé", "مؤكد"},
	"status.processing": {"Processing", "En cours", "قيد المعالجة"},
	"status.shipped":    {"Shipped", "Expédié", "تم الشحن"},
	"status.delivered":  {"Delivered", "Livré", "تم التسليم"},
	"status.cancelled":  {"Cancelled", "Annulé", "ملغي"},

	"time.today":     {"Today", "Aujourd'hui", "اليوم"},
	"time.yesterday": {"Yesterday", "Hier", "أمس"},
	"time.thisWeek":  {"This week", "Cette semaine", "هذا الأسبوع"},
	"time.thisMonth": {"This month", "Ce mois", "هذا الشهر"},

	"message.welcome":  {"Welcome!", "Bienvenue !", "مرحباً!"},
	"message.thankyou": {"Thank you!", "Merci !", "شكراً لك!"},
	"message.success":  {"Success!", "Succès !", "نجح!"},
	"message.error":    {"Error", "Erreur", "خطأ"},
	"message.warning":  {"Warning", "Attention", "تحذير"},
	"message.info":     {"Information", "Information", "معلومات"},
}
