// Package i18n holds the user-facing messages of the storefront in Arabic
// (the default, right-to-left) and English.
package i18n

import (
	"context"
	"fmt"

	"golang.org/x/text/language"
)

// Key identifies a localized message.
type Key string

const (
	LoginRequired        Key = "login_required"
	LoginRequiredForCart Key = "login_required_for_cart"
	GenericError         Key = "generic_error"

	ProductsLoadFailed Key = "products_load_failed"
	ProductsLoadError  Key = "products_load_error"
	CartAddFailed      Key = "cart_add_failed"
	CartAddError       Key = "cart_add_error"
	CartAddInFlight    Key = "cart_add_in_flight"
	CartRemoveFailed   Key = "cart_remove_failed"
	CartRemoveError    Key = "cart_remove_error"
	CartUpdateFailed   Key = "cart_update_failed"
	CartUpdateError    Key = "cart_update_error"

	SummaryLoadFailed    Key = "summary_load_failed"
	SummaryLoadError     Key = "summary_load_error"
	OrderCreateFailed    Key = "order_create_failed"
	OrderCreateError     Key = "order_create_error"
	OrderReceived        Key = "order_received"
	OrderCreated         Key = "order_created"
	PaymentMethodInvalid Key = "payment_method_invalid"
	RequestInFlight      Key = "request_in_flight"

	LoginFailed       Key = "login_failed"
	LoginError        Key = "login_error"
	RegisterFailed    Key = "register_failed"
	RegisterError     Key = "register_error"
	PhoneCountryCode  Key = "phone_country_code"
	FieldRequired     Key = "field_required"
	FieldInvalidEmail Key = "field_invalid_email"
	FieldInvalid      Key = "field_invalid"

	SettingsLoadFailed Key = "settings_load_failed"
	SettingsLoadError  Key = "settings_load_error"

	WorkshopsLoadFailed       Key = "workshops_load_failed"
	WorkshopsLoadError        Key = "workshops_load_error"
	WorkshopDetailsLoadFailed Key = "workshop_details_load_failed"
	WorkshopDetailsLoadError  Key = "workshop_details_load_error"
	SubscriptionFailed        Key = "subscription_failed"
	SubscriptionError         Key = "subscription_error"
	WorkshopJoinError         Key = "workshop_join_error"

	ReviewRatingRequired Key = "review_rating_required"
	ReviewSent           Key = "review_sent"
	ReviewError          Key = "review_error"
	ServerConnection     Key = "server_connection"
	FileViewFailed       Key = "file_view_failed"
	FileDownloadFailed   Key = "file_download_failed"
	FileError            Key = "file_error"

	ConsultationEmpty  Key = "consultation_empty"
	ConsultationFailed Key = "consultation_failed"
	ConsultationError  Key = "consultation_error"
	ContentLoadFailed  Key = "content_load_failed"
	ContentLoadError   Key = "content_load_error"
)

var (
	Arabic  = language.Arabic
	English = language.English

	supported = []language.Tag{Arabic, English}
	matcher   = language.NewMatcher(supported)
)

var catalog = map[language.Tag]map[Key]string{
	Arabic: {
		LoginRequired:        "يجب تسجيل الدخول أولاً",
		LoginRequiredForCart: "يجب تسجيل الدخول أولاً لإضافة منتجات للسلة",
		GenericError:         "حدث خطأ، يرجى المحاولة مرة أخرى",

		ProductsLoadFailed: "فشل تحميل المنتجات",
		ProductsLoadError:  "حدث خطأ أثناء تحميل المنتجات",
		CartAddFailed:      "فشل إضافة المنتج للسلة",
		CartAddError:       "حدث خطأ أثناء الإضافة للسلة",
		CartAddInFlight:    "جاري إضافة المنتج للسلة",
		CartRemoveFailed:   "فشل حذف المنتج",
		CartRemoveError:    "حدث خطأ أثناء الحذف",
		CartUpdateFailed:   "فشل تحديث الكمية",
		CartUpdateError:    "حدث خطأ أثناء تحديث الكمية",

		SummaryLoadFailed:    "فشل تحميل ملخص الطلب",
		SummaryLoadError:     "حدث خطأ أثناء تحميل ملخص الطلب",
		OrderCreateFailed:    "فشل إنشاء الطلب",
		OrderCreateError:     "حدث خطأ أثناء إنشاء الطلب",
		OrderReceived:        "تم استلام طلبك بنجاح، سيتم التواصل معك قريباً",
		OrderCreated:         "تم إنشاء الطلب بنجاح",
		PaymentMethodInvalid: "طريقة الدفع غير متاحة",
		RequestInFlight:      "جاري معالجة الطلب",

		LoginFailed:       "فشل تسجيل الدخول",
		LoginError:        "حدث خطأ أثناء تسجيل الدخول",
		RegisterFailed:    "فشل إنشاء الحساب",
		RegisterError:     "حدث خطأ أثناء إنشاء الحساب",
		PhoneCountryCode:  "يجب كتابة رمز الدولة (%s) في بداية رقم الهاتف",
		FieldRequired:     "هذا الحقل مطلوب: %s",
		FieldInvalidEmail: "البريد الإلكتروني غير صالح",
		FieldInvalid:      "قيمة غير صالحة: %s",

		SettingsLoadFailed: "فشل تحميل الإعدادات",
		SettingsLoadError:  "حدث خطأ أثناء تحميل الإعدادات",

		WorkshopsLoadFailed:       "فشل تحميل الورش",
		WorkshopsLoadError:        "حدث خطأ أثناء تحميل الورش",
		WorkshopDetailsLoadFailed: "فشل تحميل تفاصيل الورشة",
		WorkshopDetailsLoadError:  "حدث خطأ أثناء تحميل التفاصيل",
		SubscriptionFailed:        "فشل الاشتراك في الورشة",
		SubscriptionError:         "حدث خطأ أثناء الاشتراك",
		WorkshopJoinError:         "حدث خطأ في الانضمام للورشة",

		ReviewRatingRequired: "يرجى اختيار عدد النجوم للتقييم",
		ReviewSent:           "تم إرسال تقييمك بنجاح",
		ReviewError:          "حدث خطأ أثناء إرسال التقييم",
		ServerConnection:     "حدث خطأ في الاتصال بالخادم",
		FileViewFailed:       "فشل عرض الملف. يرجى المحاولة لاحقاً.",
		FileDownloadFailed:   "فشل تحميل الملف. يرجى المحاولة لاحقاً.",
		FileError:            "حدث خطأ أثناء معالجة الملف",

		ConsultationEmpty:  "برجاء كتابة محتوى الاستشارة",
		ConsultationFailed: "فشل إرسال الطلب، برجاء المحاولة مرة أخرى",
		ConsultationError:  "حدث خطأ أثناء إرسال الطلب",
		ContentLoadFailed:  "فشل تحميل المحتوى",
		ContentLoadError:   "حدث خطأ أثناء تحميل المحتوى",
	},
	English: {
		LoginRequired:        "Please log in first",
		LoginRequiredForCart: "Please log in first to add products to your cart",
		GenericError:         "Something went wrong, please try again",

		ProductsLoadFailed: "Failed to load products",
		ProductsLoadError:  "An error occurred while loading products",
		CartAddFailed:      "Failed to add the product to your cart",
		CartAddError:       "An error occurred while adding to your cart",
		CartAddInFlight:    "The product is already being added",
		CartRemoveFailed:   "Failed to remove the product",
		CartRemoveError:    "An error occurred while removing the product",
		CartUpdateFailed:   "Failed to update the quantity",
		CartUpdateError:    "An error occurred while updating the quantity",

		SummaryLoadFailed:    "Failed to load the order summary",
		SummaryLoadError:     "An error occurred while loading the order summary",
		OrderCreateFailed:    "Failed to create the order",
		OrderCreateError:     "An error occurred while creating the order",
		OrderReceived:        "Your order was received, we will contact you soon",
		OrderCreated:         "Order created successfully",
		PaymentMethodInvalid: "This payment method is not available",
		RequestInFlight:      "Your request is being processed",

		LoginFailed:       "Login failed",
		LoginError:        "An error occurred while logging in",
		RegisterFailed:    "Registration failed",
		RegisterError:     "An error occurred while creating your account",
		PhoneCountryCode:  "The phone number must start with the country code (%s)",
		FieldRequired:     "This field is required: %s",
		FieldInvalidEmail: "The email address is not valid",
		FieldInvalid:      "Invalid value: %s",

		SettingsLoadFailed: "Failed to load settings",
		SettingsLoadError:  "An error occurred while loading settings",

		WorkshopsLoadFailed:       "Failed to load workshops",
		WorkshopsLoadError:        "An error occurred while loading workshops",
		WorkshopDetailsLoadFailed: "Failed to load the workshop details",
		WorkshopDetailsLoadError:  "An error occurred while loading the details",
		SubscriptionFailed:        "Failed to subscribe to the workshop",
		SubscriptionError:         "An error occurred while subscribing",
		WorkshopJoinError:         "An error occurred while joining the workshop",

		ReviewRatingRequired: "Please choose a star rating",
		ReviewSent:           "Your review was sent",
		ReviewError:          "An error occurred while sending your review",
		ServerConnection:     "Could not reach the server",
		FileViewFailed:       "Failed to open the file. Please try again later.",
		FileDownloadFailed:   "Failed to download the file. Please try again later.",
		FileError:            "An error occurred while processing the file",

		ConsultationEmpty:  "Please write the consultation message",
		ConsultationFailed: "Failed to send the request, please try again",
		ConsultationError:  "An error occurred while sending the request",
		ContentLoadFailed:  "Failed to load content",
		ContentLoadError:   "An error occurred while loading content",
	},
}

// Match picks the supported language for an Accept-Language header value.
// Arabic is returned when nothing matches.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Arabic
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Arabic
	}
	return supported[idx]
}

// Dir returns the text direction of lang: "rtl" or "ltr".
func Dir(lang language.Tag) string {
	if lang == Arabic {
		return "rtl"
	}
	return "ltr"
}

// T returns the message for key in lang, formatted with args.
func T(lang language.Tag, key Key, args ...any) string {
	msgs, ok := catalog[lang]
	if !ok {
		msgs = catalog[Arabic]
	}
	msg, ok := msgs[key]
	if !ok {
		msg = catalog[Arabic][key]
	}
	if msg == "" {
		return string(key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

type langKey struct{}

// WithLanguage stores the negotiated language in ctx.
func WithLanguage(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// FromContext returns the language stored in ctx, or Arabic.
func FromContext(ctx context.Context) language.Tag {
	if lang, ok := ctx.Value(langKey{}).(language.Tag); ok {
		return lang
	}
	return Arabic
}

// Tc is T with the language taken from ctx.
func Tc(ctx context.Context, key Key, args ...any) string {
	return T(FromContext(ctx), key, args...)
}
