package model

import "time"

func bound(v float64) *float64 { return &v }

func text(id, label, placeholder string, required bool) TemplateField {
	return TemplateField{ID: id, Type: FieldText, Label: label, Placeholder: placeholder, Required: required}
}

func scale(id string, t FieldType, label string, min, max float64) TemplateField {
	return TemplateField{ID: id, Type: t, Label: label, Min: bound(min), Max: bound(max)}
}

func choice(id, label string, options ...string) TemplateField {
	return TemplateField{ID: id, Type: FieldSelect, Label: label, Options: options}
}

// builtInTemplates are the read-only templates every user sees. The
// spiritual journal's yes/no questions are single-choice selects.
var builtInTemplates = []Template{
	{
		ID: "daily-reflection", Name: "تأمل يومي", Description: "قالب للتأمل اليومي وتدوين المشاعر",
		Icon: "📝", Category: CategoryDaily,
		Fields: []TemplateField{
			text("1", "كيف كان يومك؟", "اكتب عن يومك...", true),
			{ID: "2", Type: FieldRating, Label: "تقييم اليوم", Min: bound(1), Max: bound(5), Required: true},
			text("3", "ثلاثة أشياء ممتن لها", "1. ...\n2. ...\n3. ...", false),
			text("4", "تحديات اليوم", "ما التحديات التي واجهتها؟", false),
			text("5", "خطة الغد", "ماذا تخطط لغد؟", false),
		},
	},
	{
		ID: "health-tracker", Name: "متتبع الصحة", Description: "تتبع صحتك اليومية",
		Icon: "🏃", Category: CategoryHealth,
		Fields: []TemplateField{
			scale("1", FieldSlider, "مستوى الطاقة", 1, 10),
			scale("2", FieldSlider, "جودة النوم", 1, 10),
			{ID: "3", Type: FieldNumber, Label: "عدد خطوات المشي", Placeholder: "0"},
			{ID: "4", Type: FieldNumber, Label: "أكواب الماء", Placeholder: "0"},
			text("5", "ملاحظات صحية", "أي ملاحظات...", false),
		},
	},
	{
		ID: "work-log", Name: "سجل العمل", Description: "تتبع إنجازات العمل اليومية",
		Icon: "💼", Category: CategoryWork,
		Fields: []TemplateField{
			text("1", "المهام المنجزة", "قائمة المهام المنجزة...", false),
			text("2", "المهام المعلقة", "المهام التي لم تكتمل...", false),
			text("3", "التحديات", "التحديات التي واجهتها...", false),
			scale("4", FieldRating, "إنتاجية اليوم", 1, 5),
			text("5", "ملاحظات", "أي ملاحظات إضافية...", false),
		},
	},
	{
		ID: "spiritual-journal", Name: "يوميات روحية", Description: "تدوين الروحانيات والأذكار",
		Icon: "🕌", Category: CategorySpiritual,
		Fields: []TemplateField{
			choice("1", "صلاة الفجر", "نعم", "لا", "جماعة"),
			choice("2", "الوتر", "نعم", "لا"),
			choice("3", "أذكار الصباح", "نعم", "لا", "بعضها"),
			choice("4", "أذكار المساء", "نعم", "لا", "بعضها"),
			text("5", "قراءة القرآن", "الصفحات أو الأجزاء...", false),
			text("6", "الدعاء والتأمل", "ماذا دعوت اليوم؟", false),
		},
	},
	{
		ID: "gratitude-journal", Name: "يوميات الامتنان", Description: "تدوين الأشياء التي تشعر بالامتنان تجاهها",
		Icon: "🙏", Category: CategoryDaily,
		Fields: []TemplateField{
			text("1", "شخص ممتن له", "من الشخص الذي تشكره اليوم؟", false),
			text("2", "حدث جميل", "ما الحدث الجميل الذي حدث؟", false),
			text("3", "نعمة صغيرة", "نعمة صغيرة لاحظتها اليوم...", false),
			text("4", "دراسة تعلمتها", "ماذا تعلمت اليوم؟", false),
			scale("5", FieldRating, "مستوى الامتنان", 1, 5),
		},
	},
	{
		ID: "meeting-notes", Name: "ملاحظات اجتماع", Description: "قالب لتدوين ملاحظات الاجتماعات",
		Icon: "👥", Category: CategoryWork,
		Fields: []TemplateField{
			text("1", "عنوان الاجتماع", "", true),
			{ID: "2", Type: FieldDate, Label: "التاريخ"},
			{ID: "3", Type: FieldTime, Label: "الوقت"},
			text("4", "الحضور", "أسماء الحاضرين...", false),
			text("5", "النقاط الرئيسية", "النقاط المطروحة...", false),
			text("6", "القرارات", "القرارات المتخذة...", false),
			text("7", "المهام القادمة", "المهام الموكلة...", false),
		},
	},
	{
		ID: "travel-log", Name: "سجل السفر", Description: "تدوين مغامرات السفر",
		Icon: "✈️", Category: CategoryPersonal,
		Fields: []TemplateField{
			text("1", "الوجهة", "", true),
			{ID: "2", Type: FieldDate, Label: "تاريخ الرحلة"},
			{ID: "3", Type: FieldImage, Label: "صورة اليوم"},
			text("4", "أبرز اللحظات", "ما أفضل ما حدث؟", false),
			text("5", "الطعام الجديد", "ماذا ذقت من أطعمة جديدة؟", false),
			scale("6", FieldRating, "تقييم الرحلة", 1, 5),
			text("7", "ملاحظات", "نصائح للمرة القادمة...", false),
		},
	},
	{
		ID: "book-review", Name: "مراجعة كتاب", Description: "تدوين ملاحظات ومراجعات الكتب",
		Icon: "📚", Category: CategoryPersonal,
		Fields: []TemplateField{
			text("1", "عنوان الكتاب", "", true),
			text("2", "المؤلف", "", false),
			{ID: "3", Type: FieldNumber, Label: "عدد الصفحات"},
			scale("4", FieldSlider, "التقييم", 1, 10),
			text("5", "ملخص الكتاب", "أهم الأفكار...", false),
			text("6", "اقتباسات مميزة", "أفضل ما أعجبك...", false),
			text("7", "ماذا تعلمت", "الدروس المستفادة...", false),
		},
	},
}

// DefaultTemplates returns fresh copies of the built-in templates, stamped
// with now.
func DefaultTemplates(now time.Time) []Template {
	out := make([]Template, len(builtInTemplates))
	for i, t := range builtInTemplates {
		t.Fields = append([]TemplateField(nil), t.Fields...)
		t.BuiltIn = true
		t.CreatedAt = now
		t.UpdatedAt = now
		out[i] = t
	}
	return out
}

// DefaultTemplate looks up a built-in template by id.
func DefaultTemplate(id string, now time.Time) (Template, bool) {
	for _, t := range DefaultTemplates(now) {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Quote is an inspirational saying shown on the dashboard.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var InspirationalQuotes = []Quote{
	{"النجاح ليس نهائياً، والفشل ليس قاتلاً، إنما الشجاعة للاستمرار هي ما يهم.", "ونستون تشرشل"},
	{"الطريقة الوحيدة للقيام بعمل عظيم هي أن تحب ما تفعله.", "ستيف جوبز"},
	{"لا تخف من الفشل، بل خف من عدم المحاولة.", "روي بينيت"},
	{"كل إنجاز عظيم كان في البداية مستحيلاً.", "توماس كارلايل"},
	{"الصبر مفتاح الفرج.", "حكمة عربية"},
	{"من جد وجد، ومن زرع حصد.", "مثل عربي"},
	{"العلم نور والجهل ظلام.", "حكمة عربية"},
	{"في التأني السلامة وفي العجلة الندامة.", "مثل عربي"},
	{"لا يؤمن أحدكم حتى يحب لأخيه ما يحب لنفسه.", "حديث شريف"},
	{"الدنيا ساعة فاجعلها طاعة.", "حكمة عربية"},
}

// QuoteOfTheDay picks a quote deterministically from the day of the year.
func QuoteOfTheDay(t time.Time) Quote {
	return InspirationalQuotes[t.YearDay()%len(InspirationalQuotes)]
}
