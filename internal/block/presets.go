package block

// TrackerPreset is a ready-made tracker the editor offers for one click insert.
type TrackerPreset struct {
	Name   string  `json:"name"`
	Icon   string  `json:"icon"`
	Unit   string  `json:"unit"`
	Target float64 `json:"target"`
	Color  string  `json:"color"`
}

// Input turns the preset into factory input.
func (p TrackerPreset) Input() Input {
	return Input{Name: p.Name, Icon: p.Icon, Unit: p.Unit, Target: p.Target, Color: p.Color}
}

var CommonTrackers = []TrackerPreset{
	{Name: "ماء", Icon: "💧", Unit: "كوب", Target: 8, Color: "#0ea5e9"},
	{Name: "خطوات", Icon: "👟", Unit: "خطوة", Target: 10000, Color: "#22c55e"},
	{Name: "رياضة", Icon: "🏋️", Unit: "دقيقة", Target: 30, Color: "#f59e0b"},
	{Name: "نوم", Icon: "😴", Unit: "ساعة", Target: 8, Color: "#8b5cf6"},
	{Name: "قراءة", Icon: "📖", Unit: "صفحة", Target: 30, Color: "#ec4899"},
	{Name: "تأمل", Icon: "🧘", Unit: "دقيقة", Target: 10, Color: "#14b8a6"},
}

// TagColors is the palette offered when creating a tag.
var TagColors = []string{
	"#ef4444", "#f97316", "#f59e0b", "#eab308", "#84cc16",
	"#22c55e", "#10b981", "#14b8a6", "#06b6d4", "#0ea5e9",
	"#3b82f6", "#6366f1", "#8b5cf6", "#a855f7", "#d946ef",
	"#ec4899", "#f43f5e", "#78716c", "#737373", "#71717a",
}

var ProgrammingLanguages = []string{
	"javascript", "typescript", "python", "java", "c", "cpp", "csharp",
	"go", "rust", "php", "ruby", "swift", "kotlin", "dart", "sql",
	"html", "css", "json", "yaml", "markdown", "bash", "shell",
}
