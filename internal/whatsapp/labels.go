package whatsapp

// labels are the message strings per storefront language. Unknown languages
// fall back to English.
type labels struct {
	OrderFrom     string
	OrderNumber   string
	Date          string
	Name          string
	Email         string
	Phone         string
	Products      string
	Size          string
	Color         string
	Shipping      string
	Delivery      string
	Pickup        string
	Address       string
	PaymentMethod string
	Cash          string
	PayPal        string
	Subtotal      string
	ShippingFee   string
	Discount      string
	Total         string
	TrackOrder    string
	Coupon        string
}

var labelsByLanguage = map[string]labels{
	"en": {
		OrderFrom:     "Order from",
		OrderNumber:   "Order Number",
		Date:          "Date",
		Name:          "Name",
		Email:         "Email",
		Phone:         "Phone",
		Products:      "Products",
		Size:          "Size",
		Color:         "Color",
		Shipping:      "Shipping",
		Delivery:      "Delivery",
		Pickup:        "Pickup",
		Address:       "Address",
		PaymentMethod: "Payment Method",
		Cash:          "Cash",
		PayPal:        "PayPal",
		Subtotal:      "Subtotal",
		ShippingFee:   "Shipping Fee",
		Discount:      "Discount",
		Total:         "Total",
		TrackOrder:    "You can track your order at",
		Coupon:        "Coupon",
	},
	"hi": {
		OrderFrom:     "से ऑर्डर",
		OrderNumber:   "ऑर्डर नंबर",
		Date:          "तारीख",
		Name:          "नाम",
		Email:         "ईमेल",
		Phone:         "फ़ोन",
		Products:      "उत्पाद",
		Size:          "साइज़",
		Color:         "रंग",
		Shipping:      "शिपिंग",
		Delivery:      "डिलीवरी",
		Pickup:        "पिकअप",
		Address:       "पता",
		PaymentMethod: "भुगतान विधि",
		Cash:          "कैश",
		PayPal:        "PayPal",
		Subtotal:      "उप-योग",
		ShippingFee:   "शिपिंग शुल्क",
		Discount:      "छूट",
		Total:         "कुल",
		TrackOrder:    "आप अपने ऑर्डर को यहाँ ट्रैक कर सकते हैं",
		Coupon:        "कूपन",
	},
	"pa": {
		OrderFrom:     "ਤੋਂ ਆਰਡਰ",
		OrderNumber:   "ਆਰਡਰ ਨੰਬਰ",
		Date:          "ਤਾਰੀਖ",
		Name:          "ਨਾਮ",
		Email:         "ਈਮੇਲ",
		Phone:         "ਫ਼ੋਨ",
		Products:      "ਉਤਪਾਦ",
		Size:          "ਸਾਈਜ਼",
		Color:         "ਰੰਗ",
		Shipping:      "ਸ਼ਿਪਿੰਗ",
		Delivery:      "ਡਿਲੀਵਰੀ",
		Pickup:        "ਪਿਕਅੱਪ",
		Address:       "ਪਤਾ",
		PaymentMethod: "ਭੁਗਤਾਨ ਵਿਧੀ",
		Cash:          "ਨਕਦ",
		PayPal:        "PayPal",
		Subtotal:      "ਉਪ-ਜੋੜ",
		ShippingFee:   "ਸ਼ਿਪਿੰਗ ਫੀਸ",
		Discount:      "ਛੋਟ",
		Total:         "ਕੁੱਲ",
		TrackOrder:    "ਤੁਸੀਂ ਆਪਣੇ ਆਰਡਰ ਨੂੰ ਇੱਥੇ ਟਰੈਕ ਕਰ ਸਕਦੇ ਹੋ",
		Coupon:        "ਕੂਪਨ",
	},
	"hr": {
		OrderFrom:     "Narudžba od",
		OrderNumber:   "Broj narudžbe",
		Date:          "Datum",
		Name:          "Ime",
		Email:         "E-pošta",
		Phone:         "Telefon",
		Products:      "Proizvodi",
		Size:          "Veličina",
		Color:         "Boja",
		Shipping:      "Dostava",
		Delivery:      "Dostava",
		Pickup:        "Preuzimanje",
		Address:       "Adresa",
		PaymentMethod: "Način plaćanja",
		Cash:          "Gotovina",
		PayPal:        "PayPal",
		Subtotal:      "Podzbroj",
		ShippingFee:   "Troškovi dostave",
		Discount:      "Popust",
		Total:         "Ukupno",
		TrackOrder:    "Možete pratiti svoju narudžbu na",
		Coupon:        "Kupon",
	},
	"gu": {
		OrderFrom:     "થી ઓર્ડર",
		OrderNumber:   "ઓર્ડર નંબર",
		Date:          "તારીખ",
		Name:          "નામ",
		Email:         "ઈમેલ",
		Phone:         "ફોન",
		Products:      "ઉત્પાદનો",
		Size:          "સાઇઝ",
		Color:         "રંગ",
		Shipping:      "શિપિંગ",
		Delivery:      "ડિલિવરી",
		Pickup:        "પિકઅપ",
		Address:       "સરનામું",
		PaymentMethod: "ચુકવણી પદ્ધતિ",
		Cash:          "રોકડ",
		PayPal:        "PayPal",
		Subtotal:      "પેટા-કુલ",
		ShippingFee:   "શિપિંગ ફી",
		Discount:      "છૂટ",
		Total:         "કુલ",
		TrackOrder:    "તમે તમારા ઓર્ડરને અહીં ટ્રૅક કરી શકો છો",
		Coupon:        "કૂપન",
	},
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"HKD": "HK$",
	"SGD": "S$",
	"NZD": "NZ$",
}
