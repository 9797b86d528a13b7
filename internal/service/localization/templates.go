package localization

import "github.com/bangla-ai/platform/internal/domain"

// defaultTemplates is the built-in response set, keyed language → key → body.
// English is complete (it is the fallback language); other languages may
// cover a subset and fall back for the rest. Tenant-specific rows in the
// template store override these.
var defaultTemplates = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		"greeting":                  "Hello! I am {bot_name|your assistant}. How can I help you today?",
		"order_status_missing":      "Please tell me your order number.",
		"return_request_missing":    "I need your order number to process the return. Please share it.",
		"delivery_tracking_missing": "I need your order number to track the delivery. Please share it.",
		"order_status_fetch":        "Checking the status of order #{order_id}, one moment...",
		"return_request_fetch":      "Processing your return request for order #{order_id}...",
		"delivery_tracking_fetch":   "Checking the delivery status of order #{order_id}...",
		"payment_issue_handoff":     "I am connecting you with our payment team. Please hold on.",
		"complaint_handoff":         "I am connecting you with a customer service agent about your complaint. Please hold on.",
		"fallback_handoff":          "I could not quite understand your question. Let me connect you with an agent.",
		"internal_error_handoff":    "Something went wrong on our side. Let me connect you with an agent.",
		"clarify_product":           "Which product do you mean? Please tell me the product name.",
		"clarify_message":           "Could you tell me a bit more about what you are looking for?",
		"product_not_found":         "I could not find any product named '{product_name}'. Please try another name.",
		"thank_you":                 "Thank you! Anything else I can help with?",
		"goodbye":                   "Thank you for your time. Have a great day!",
	},
	domain.LanguageBengali: {
		"greeting":                  "Assalamu alaikum! Ami {bot_name|apnar assistant}. Apnake ki bhabe shahajjo korte pari?",
		"order_status_missing":      "Apnar order number ta bolun please.",
		"return_request_missing":    "Return er jonno apnar order number dorkar. Order number bolun please.",
		"delivery_tracking_missing": "Delivery track korte apnar order number lagbe. Bolun please.",
		"order_status_fetch":        "Apnar order #{order_id} er status check korchi, ektu oppokha korun...",
		"return_request_fetch":      "Apnar order #{order_id} er return request process korchi...",
		"delivery_tracking_fetch":   "Order #{order_id} er delivery status check korchi...",
		"payment_issue_handoff":     "Payment issue er jonno ami apnake amader payment team er sathe connect korchi. Ektu wait korun please.",
		"complaint_handoff":         "Apnar complaint er jonno ami apnake amader customer service agent er sathe connect korchi. Ektu oppokha korun.",
		"fallback_handoff":          "Ami apnar prosno ta thik bujhte parchi na. Ami apnake amader agent er sathe connect korchi.",
		"internal_error_handoff":    "Dukkhito, ekta somossha hoyeche. Ami apnake amader agent er sathe connect korchi.",
		"clarify_product":           "কোন প্রোডাক্টের কথা বলছেন? প্রোডাক্টের নাম বলুন।",
		"clarify_message":           "আপনি কী খুঁজছেন একটু বিস্তারিত বলুন।",
		"product_not_found":         "'{product_name}' নামের কোন প্রোডাক্ট খুঁজে পেলাম না। অন্য নাম চেষ্টা করুন।",
		"thank_you":                 "Dhonnobad! Aro kono shahajjo lagbe?",
		"goodbye":                   "Dhonnobad apnar somoy dewar jonno. Bhalo thakben!",
	},
	domain.LanguageArabic: {
		"greeting":               "مرحباً! أنا {bot_name|مساعدك}. كيف يمكنني مساعدتك؟",
		"order_status_missing":   "من فضلك أخبرني برقم طلبك.",
		"payment_issue_handoff":  "سأقوم بتحويلك إلى فريق الدفع لدينا. يرجى الانتظار.",
		"complaint_handoff":      "سأقوم بتحويلك إلى أحد موظفي خدمة العملاء بخصوص شكواك. يرجى الانتظار.",
		"fallback_handoff":       "لم أفهم سؤالك جيداً. سأحولك إلى أحد الموظفين.",
		"internal_error_handoff": "حدث خطأ من جانبنا. سأحولك إلى أحد الموظفين.",
	},
	domain.LanguageHindi: {
		"greeting":               "नमस्ते! मैं {bot_name|आपका सहायक} हूँ। मैं आपकी कैसे मदद कर सकता हूँ?",
		"order_status_missing":   "कृपया अपना ऑर्डर नंबर बताएं।",
		"payment_issue_handoff":  "मैं आपको हमारी पेमेंट टीम से जोड़ रहा हूँ। कृपया प्रतीक्षा करें।",
		"complaint_handoff":      "आपकी शिकायत के लिए मैं आपको हमारे एजेंट से जोड़ रहा हूँ। कृपया प्रतीक्षा करें।",
		"fallback_handoff":       "मैं आपका सवाल ठीक से समझ नहीं पाया। मैं आपको हमारे एजेंट से जोड़ रहा हूँ।",
		"internal_error_handoff": "हमारी तरफ से कुछ गड़बड़ हुई है। मैं आपको हमारे एजेंट से जोड़ रहा हूँ।",
	},
	domain.LanguageUrdu: {
		"greeting":               "السلام علیکم! میں {bot_name|آپ کا معاون} ہوں۔ میں آپ کی کیسے مدد کر سکتا ہوں؟",
		"order_status_missing":   "براہ کرم اپنا آرڈر نمبر بتائیں۔",
		"payment_issue_handoff":  "میں آپ کو ہماری پیمنٹ ٹیم سے جوڑ رہا ہوں۔ براہ کرم انتظار کریں۔",
		"complaint_handoff":      "آپ کی شکایت کے لیے میں آپ کو ہمارے ایجنٹ سے جوڑ رہا ہوں۔ براہ کرم انتظار کریں۔",
		"fallback_handoff":       "میں آپ کا سوال ٹھیک سے سمجھ نہیں سکا۔ میں آپ کو ہمارے ایجنٹ سے جوڑ رہا ہوں۔",
		"internal_error_handoff": "ہماری طرف سے کچھ مسئلہ ہوا ہے۔ میں آپ کو ہمارے ایجنٹ سے جوڑ رہا ہوں۔",
	},
}
