package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/block"
	"github.com/sakif/yawmiyat/internal/model"
)

type fakeGenerator struct {
	reply  string
	err    error
	key    string
	prompt string
	calls  int
}

func (f *fakeGenerator) Generate(_ context.Context, apiKey, prompt string) (string, error) {
	f.calls++
	f.key = apiKey
	f.prompt = prompt
	return f.reply, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func entry(date, title, text string) model.Entry {
	return model.Entry{
		Date:    date,
		Title:   title,
		Content: []block.Block{{ID: "b-" + date, Content: text}},
		Tags:    []string{},
	}
}

// =========================================================================
// ASK TESTS
// =========================================================================

func TestAsk_NoKey(t *testing.T) {
	gen := &fakeGenerator{reply: "مرحبا"}
	a := New(gen, "", discardLogger())

	assert.Equal(t, MissingKeyReply, a.Ask(context.Background(), "", "كيف حالي؟", nil, nil))
	assert.Zero(t, gen.calls)
}

func TestAsk_UserKeyWinsOverDefault(t *testing.T) {
	gen := &fakeGenerator{reply: "أنت بخير 😊"}
	a := New(gen, "server-key", discardLogger())

	got := a.Ask(context.Background(), "user-key", "كيف حالي؟", nil, nil)
	assert.Equal(t, "أنت بخير 😊", got)
	assert.Equal(t, "user-key", gen.key)

	a.Ask(context.Background(), "", "كيف حالي؟", nil, nil)
	assert.Equal(t, "server-key", gen.key)
}

func TestAsk_ModelError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("403 permission denied")}
	a := New(gen, "k", discardLogger())
	assert.Equal(t, ErrorReply, a.Ask(context.Background(), "", "سؤال", nil, nil))
}

func TestAsk_EmptyReply(t *testing.T) {
	gen := &fakeGenerator{reply: "  "}
	a := New(gen, "k", discardLogger())
	assert.Equal(t, EmptyReply, a.Ask(context.Background(), "", "سؤال", nil, nil))
}

// =========================================================================
// PROMPT TESTS
// =========================================================================

func TestBuildPrompt_NoEntries(t *testing.T) {
	p := BuildPrompt("مرحبا", nil, nil)
	assert.Contains(t, p, "- عدد التدوينات: 0")
	assert.Contains(t, p, "لا توجد يوميات مسجلة بعد.")
	assert.NotContains(t, p, "آخر تدوينة")
	assert.NotContains(t, p, "سجل المحادثة السابقة")
	assert.True(t, strings.HasSuffix(p, "المستخدم: مرحبا\n\nالمساعد:"))
}

func TestBuildPrompt_Entries(t *testing.T) {
	e := entry("2024-03-11", "", "يوم طويل")
	e.Mood = model.MoodTired
	e.Tags = []string{"عمل", "رياضة"}
	e.Content = append(e.Content, block.Block{ID: "q", Content: "لا يظهر", Data: block.QuoteData{}})

	p := BuildPrompt("ماذا فعلت؟", []model.Entry{e, entry("2024-03-10", "أمس", "")}, nil)

	assert.Contains(t, p, "- عدد التدوينات: 2")
	assert.Contains(t, p, "- آخر تدوينة: 2024-03-11")
	assert.Contains(t, p, "  العنوان: بدون عنوان\n")
	assert.Contains(t, p, "  المحتوى: يوم طويل...\n")
	assert.Contains(t, p, "  المزاج: مرهق\n")
	assert.Contains(t, p, "  الوسوم: عمل, رياضة\n")
	assert.Contains(t, p, "  العنوان: أمس\n")
	assert.NotContains(t, p, "لا يظهر", "only text blocks are summarised")
}

func TestBuildPrompt_Limits(t *testing.T) {
	var entries []model.Entry
	for i := 0; i < 25; i++ {
		entries = append(entries, entry("2024-01-01", "عنوان", strings.Repeat("ك", 300)))
	}
	p := BuildPrompt("س", entries, nil)

	assert.Equal(t, maxContextEntries, strings.Count(p, "- التاريخ:"))
	assert.Contains(t, p, "- عدد التدوينات: 25")
	assert.Contains(t, p, "المحتوى: "+strings.Repeat("ك", maxEntryChars)+"...")
	assert.NotContains(t, p, strings.Repeat("ك", maxEntryChars+1))
}

func TestBuildPrompt_History(t *testing.T) {
	var history []Message
	for _, c := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		history = append(history, Message{Role: RoleUser, Content: "سؤال " + c})
	}
	history = append(history, Message{Role: RoleAssistant, Content: "جواب"})

	p := BuildPrompt("س", nil, history)
	require.Contains(t, p, "سجل المحادثة السابقة:\n")
	assert.NotContains(t, p, "سؤال 3")
	assert.Contains(t, p, "المستخدم: سؤال 4\n\n")
	assert.Contains(t, p, "المساعد: جواب\n\n")
}
