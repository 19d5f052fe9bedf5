// Package models contains data types and constants for vetchat.
package models

// Endpoints for the Generative Language API
const (
	EndpointBase = "https://generativelanguage.googleapis.com/v1beta"

	// APIKeyHeader carries the credential on every request
	APIKeyHeader = "x-goog-api-key"
)

// DefaultModel is the model identifier used when none is configured
const DefaultModel = "gemini-2.5-flash"

// DefaultAudioMIMEType tags recordings from the default capture command (arecord -t wav)
const DefaultAudioMIMEType = "audio/wav"

// ImageMIMEType is the type every attached image is declared as when forwarded to the model.
const ImageMIMEType = "image/jpeg"

// SystemInstruction is the fixed persona sent with every request.
const SystemInstruction = `شما «دکتر دامیار» هستید، متخصص ارشد بیماری‌های دامی با سال‌ها تجربه بالینی در دام‌های بزرگ و کوچک (گاو، گوسفند، بز، اسب، طیور و حیوانات خانگی).
- همیشه به زبان فارسی ساده و محترمانه پاسخ بده.
- اگر عکس یا پیام صوتی فرستاده شد، علائم قابل مشاهده یا شنیده‌شده را دقیق توصیف کن.
- تشخیص‌های افتراقی محتمل را به ترتیب احتمال بگو و اقدامات اولیه و مراقبتی را قدم‌به‌قدم توضیح بده.
- در صورت نیاز سؤال تکمیلی بپرس (سن، وزن، مدت بیماری، تغذیه، واکسیناسیون).
- در موارد اورژانسی صریحاً توصیه کن فوراً به دامپزشک یا کلینیک مراجعه شود.
- دوز دارو را فقط با ذکر احتیاط و لزوم تأیید دامپزشک حضوری بیان کن.
- پاسخ‌ها را با Markdown (تیتر، فهرست، متن پررنگ) مرتب کن.`

// User-facing strings
const (
	AppTitle = "دکتر دامیار"

	Greeting = "سلام! دکتر دامیار هستم، متخصص ارشد بیماری‌های دامی. عکس دام بیمار رو بفرست یا مشکلش رو بگو (تایپ کن یا ویس بده) تا راهنماییت کنم."

	// NoAnswerText replaces an empty model response
	NoAnswerText = "متاسفانه پاسخی دریافت نشد. لطفا دوباره تلاش کنید."

	// FailureText replaces any failed model call
	FailureText = "خطا در برقراری ارتباط با دکتر دامیار. لطفا اتصال اینترنت خود را بررسی کنید یا دوباره تلاش کنید."

	Disclaimer = "توجه: این هوش مصنوعی جایگزین دامپزشک حضوری نیست. در موارد اورژانسی حتما به کلینیک مراجعه کنید."

	LoadingText = "دکتر در حال بررسی پرونده..."

	MicrophoneDeniedText = "دسترسی به میکروفون امکان‌پذیر نیست."

	UserLabel  = "دامدار (شما)"
	ModelLabel = "دکتر دامیار"

	ImageAttachedText  = "تصویر پیوست شد"
	AudioAttachedText  = "پیام صوتی ارسال شد"
	AudioPendingText   = "پیام صوتی آماده ارسال"
	RecordingText      = "در حال ضبط صدا..."
	InputPlaceholder   = "پیام خود را بنویسید..."
	ImagePickerTitle   = "افزودن عکس"
	CopiedToClipboard  = "پاسخ در کلیپ‌بورد کپی شد"
	NothingToCopyText  = "پاسخی برای کپی وجود ندارد"
	DismissNoticeHint  = "برای ادامه یک کلید را فشار دهید"
	ImageRejectedTitle = "فایل انتخاب‌شده تصویر معتبری نیست."
	TranscriptSaved    = "گفتگو ذخیره شد"
)
