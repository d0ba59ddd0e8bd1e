package assistant

import (
	"fmt"
	"strings"

	"github.com/sakif/yawmiyat/internal/block"
	"github.com/sakif/yawmiyat/internal/model"
)

const (
	maxContextEntries = 20
	maxEntryChars     = 200
	maxHistory        = 5
)

// Role is who said a message in the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation the client keeps.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const persona = `أنت مساعد ذكي متخصص في تحليل اليوميات والمذكرات الشخصية.
تساعد المستخدم في فهم مشاعره وأنماط حياته من خلال تدويناته.
يجب أن ترد باللغة العربية دائماً وبأسلوب ودود ومتعاطف.
استخدم الإيموجي بشكل معتدل لإضفاء طابع ودي.`

// BuildPrompt renders the single prompt sent to the model. entries are
// expected newest first.
func BuildPrompt(question string, entries []model.Entry, history []Message) string {
	var b strings.Builder

	b.WriteString(persona)
	b.WriteString("\n\nإحصائيات اليوميات:\n")
	fmt.Fprintf(&b, "- عدد التدوينات: %d\n", len(entries))
	if len(entries) > 0 {
		fmt.Fprintf(&b, "- آخر تدوينة: %s\n", entries[0].Date)
	}
	b.WriteString("\n")

	writeEntries(&b, entries)

	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if len(history) > 0 {
		b.WriteString("سجل المحادثة السابقة:\n")
		for i, m := range history {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "%s: %s", speaker(m.Role), m.Content)
		}
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "المستخدم: %s\n\nالمساعد:", question)
	return b.String()
}

func writeEntries(b *strings.Builder, entries []model.Entry) {
	if len(entries) == 0 {
		b.WriteString("لا توجد يوميات مسجلة بعد.\n\n")
		return
	}
	if len(entries) > maxContextEntries {
		entries = entries[:maxContextEntries]
	}

	b.WriteString("فيما يلي ملخص ليوميات المستخدم:\n\n")
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = "بدون عنوان"
		}
		fmt.Fprintf(b, "- التاريخ: %s\n", e.Date)
		fmt.Fprintf(b, "  العنوان: %s\n", title)
		fmt.Fprintf(b, "  المحتوى: %s...\n", excerpt(e.Content))
		if e.Mood != "" {
			fmt.Fprintf(b, "  المزاج: %s\n", e.Mood.Arabic())
		}
		if len(e.Tags) > 0 {
			fmt.Fprintf(b, "  الوسوم: %s\n", strings.Join(e.Tags, ", "))
		}
		b.WriteString("\n")
	}
}

// excerpt joins the text blocks and cuts the result to maxEntryChars runes.
func excerpt(blocks []block.Block) string {
	var parts []string
	for _, bl := range blocks {
		if bl.Variant() == block.VariantText {
			parts = append(parts, bl.Content)
		}
	}
	text := []rune(strings.Join(parts, " "))
	if len(text) > maxEntryChars {
		text = text[:maxEntryChars]
	}
	return string(text)
}

func speaker(r Role) string {
	if r == RoleUser {
		return "المستخدم"
	}
	return "المساعد"
}
