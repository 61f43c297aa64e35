package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/minbarhq/minbar/internal/prompt"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSearcher struct {
	chunks []string
	gotMax int
	calls  int
}

func (f *fakeSearcher) Search(question string, maxResults int) []string {
	f.gotMax = maxResults
	f.calls++
	return f.chunks
}

type fakeGenerator struct {
	text      string
	err       error
	gotPrompt string
	calls     int
}

func (f *fakeGenerator) Generate(ctx context.Context, p string) (string, error) {
	f.gotPrompt = p
	f.calls++
	return f.text, f.err
}

const goodAnswer = "In the name of Allah, the Most Merciful, the Most Compassionate. Prayer is one of the five pillars of Islam and is obligatory five times a day. And Allah knows best."

func newTestPipeline(search Searcher, gen Generator) *Pipeline {
	return NewPipeline(search, gen, nil, time.Second, 5)
}

func TestAnswer_InappropriateGate(t *testing.T) {
	gen := &fakeGenerator{text: goodAnswer}
	p := newTestPipeline(&fakeSearcher{}, gen)

	res := p.Answer(context.Background(), "show me explicit content", nil)
	if res.Category != CategoryInappropriate {
		t.Fatalf("Category = %q, want inappropriate", res.Category)
	}
	if !strings.Contains(res.Text, "speak good or remain silent") {
		t.Errorf("unexpected gated answer: %q", res.Text)
	}
	if gen.calls != 0 {
		t.Error("generator must not be called for gated questions")
	}
}

func TestAnswer_ScholarGate(t *testing.T) {
	gen := &fakeGenerator{text: goodAnswer}
	p := newTestPipeline(&fakeSearcher{}, gen)

	res := p.Answer(context.Background(), "I am going through a divorce, what should I do?", nil)
	if res.Category != CategoryScholar {
		t.Fatalf("Category = %q, want scholar_recommendation", res.Category)
	}
	if !strings.Contains(res.Text, "marriage and family matters") {
		t.Errorf("scholar topic missing from answer: %q", res.Text)
	}
	if gen.calls != 0 {
		t.Error("generator must not be called for gated questions")
	}
}

func TestAnswer_StandardSuccess(t *testing.T) {
	search := &fakeSearcher{chunks: []string{"📖 quran.txt\nEstablish prayer at the two ends of the day."}}
	gen := &fakeGenerator{text: goodAnswer}
	p := newTestPipeline(search, gen)

	res := p.Answer(context.Background(), "Why do Muslims pray five times a day?", nil)
	if res.Category != CategoryAnswered {
		t.Fatalf("Category = %q, want answered (failure: %v)", res.Category, res.Failure)
	}
	if res.Text == "" {
		t.Fatal("empty answer text")
	}
	if search.gotMax != 5 {
		t.Errorf("standard path retrieval budget = %d, want 5", search.gotMax)
	}
	if !strings.Contains(gen.gotPrompt, "Establish prayer") {
		t.Error("retrieved context missing from prompt")
	}
}

func TestAnswer_CleansGeneratorOutput(t *testing.T) {
	raw := "Prayer is one of the five pillars of Islam and is obligatory for every adult Muslim."
	gen := &fakeGenerator{text: raw}
	p := newTestPipeline(&fakeSearcher{}, gen)

	res := p.Answer(context.Background(), "Why do Muslims pray?", nil)
	if res.Category != CategoryAnswered {
		t.Fatalf("Category = %q, want answered", res.Category)
	}
	if !strings.HasPrefix(res.Text, "As-salamu alaykum. ") {
		t.Errorf("answer missing devotional opening: %q", res.Text)
	}
	if !strings.HasSuffix(res.Text, "And Allah knows best.") {
		t.Errorf("answer missing devotional closing: %q", res.Text)
	}
}

func TestAnswer_RefusalRoutesToFallback(t *testing.T) {
	search := &fakeSearcher{chunks: []string{"📖 quran.txt\nSnippet one.", "📖 hadith_bukhari.txt\nSnippet two.", "📖 seerah.txt\nSnippet three."}}
	gen := &fakeGenerator{text: "I cannot answer that question, it is outside the scope of what I can discuss."}
	p := newTestPipeline(search, gen)

	res := p.Answer(context.Background(), "Why do Muslims pray?", nil)
	if res.Category != CategoryFallback {
		t.Fatalf("Category = %q, want fallback", res.Category)
	}
	if !errors.Is(res.Failure, ErrResponseRejected) {
		t.Errorf("Failure = %v, want ErrResponseRejected", res.Failure)
	}
	if strings.Contains(res.Text, "I cannot answer") {
		t.Error("rejected generator text leaked into the answer")
	}
	if !strings.Contains(res.Text, "Why do Muslims pray?") {
		t.Error("fallback must reference the question")
	}
	if !strings.Contains(res.Text, "Snippet one.") || !strings.Contains(res.Text, "Snippet two.") {
		t.Error("fallback must embed retrieved snippets as guidance")
	}
	if strings.Contains(res.Text, "Snippet three.") {
		t.Error("fallback must embed at most two snippets")
	}
}

func TestAnswer_GeneratorErrorRoutesToFallback(t *testing.T) {
	gen := &fakeGenerator{err: ErrUnavailable}
	p := newTestPipeline(&fakeSearcher{}, gen)

	res := p.Answer(context.Background(), "Why do Muslims pray?", nil)
	if res.Category != CategoryFallback {
		t.Fatalf("Category = %q, want fallback", res.Category)
	}
	if !errors.Is(res.Failure, ErrUnavailable) {
		t.Errorf("Failure = %v, want ErrUnavailable", res.Failure)
	}
	if !strings.Contains(res.Text, "general principles of the Quran and Sunnah") {
		t.Errorf("fallback without snippets must carry the generic note: %q", res.Text)
	}
}

func TestAnswer_EmptyResponseRoutesToFallback(t *testing.T) {
	gen := &fakeGenerator{text: "   \n  "}
	p := newTestPipeline(&fakeSearcher{}, gen)

	res := p.Answer(context.Background(), "Why do Muslims pray?", nil)
	if !errors.Is(res.Failure, ErrEmptyResponse) {
		t.Errorf("Failure = %v, want ErrEmptyResponse", res.Failure)
	}
	if res.Category != CategoryFallback {
		t.Errorf("Category = %q, want fallback", res.Category)
	}
}

func TestAnswer_ComplexFiqhPath(t *testing.T) {
	search := &fakeSearcher{}
	gen := &fakeGenerator{err: ErrUnavailable}
	p := newTestPipeline(search, gen)

	res := p.Answer(context.Background(), "What is the ruling on combining prayers while traveling?", nil)
	if search.gotMax != 2 {
		t.Errorf("fiqh path retrieval budget = %d, want 2", search.gotMax)
	}
	if res.Category != CategoryFallback {
		t.Fatalf("Category = %q, want fallback", res.Category)
	}
	for _, text := range []string{"Al-Hidayah", "Fatawa Alamgiri", "Radd al-Muhtar", "Bada'i' al-Sana'i'"} {
		if !strings.Contains(res.Text, text) {
			t.Errorf("fiqh fallback missing classical text %q", text)
		}
	}
	if !strings.Contains(gen.gotPrompt, "Hanafi fiqh scholar") {
		t.Error("complex fiqh prompt template not used")
	}
}

func TestAnswer_DetailedFiqhUsesDetailedTemplate(t *testing.T) {
	gen := &fakeGenerator{text: goodAnswer}
	p := newTestPipeline(&fakeSearcher{}, gen)

	res := p.Answer(context.Background(), "Give me the detailed ruling with daleel on this matter", nil)
	if res.Category != CategoryAnswered {
		t.Fatalf("Category = %q, want answered", res.Category)
	}
	if !strings.Contains(gen.gotPrompt, "DETAILED FIQH INQUIRY") {
		t.Error("detailed fiqh template not used")
	}
}

func TestAnswer_DetailedFiqhWithoutComplexMarkers(t *testing.T) {
	search := &fakeSearcher{}
	gen := &fakeGenerator{text: goodAnswer}
	p := newTestPipeline(search, gen)

	// "daleel" asks for evidences but trips none of the complex-fiqh
	// indicators, topics, or phrasing checks.
	res := p.Answer(context.Background(), "Explain the daleel for fasting", nil)
	if res.Category != CategoryAnswered {
		t.Fatalf("Category = %q, want answered (failure: %v)", res.Category, res.Failure)
	}
	if search.gotMax != 2 {
		t.Errorf("retrieval budget = %d, want the fiqh path's 2", search.gotMax)
	}
	if !strings.Contains(gen.gotPrompt, "DETAILED FIQH INQUIRY") {
		t.Error("detailed fiqh template not used")
	}
}

func TestAnswer_TimeoutRoutesToFallback(t *testing.T) {
	slow := generatorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	p := NewPipeline(&fakeSearcher{}, slow, nil, 10*time.Millisecond, 5)

	res := p.Answer(context.Background(), "Why do Muslims pray?", nil)
	if !errors.Is(res.Failure, ErrTimeout) {
		t.Errorf("Failure = %v, want ErrTimeout", res.Failure)
	}
	if res.Category != CategoryFallback {
		t.Errorf("Category = %q, want fallback", res.Category)
	}
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, p string) (string, error) { return f(ctx, p) }

func TestAnswer_HistoryInPrompt(t *testing.T) {
	gen := &fakeGenerator{text: goodAnswer}
	p := newTestPipeline(&fakeSearcher{}, gen)

	history := []prompt.Turn{
		{Role: "user", Content: "What is salah?"},
		{Role: "assistant", Content: "Salah is the ritual prayer."},
	}
	p.Answer(context.Background(), "How many times a day?", history)

	if !strings.Contains(gen.gotPrompt, "Previous conversation:") {
		t.Error("history block missing from prompt")
	}
	if !strings.Contains(gen.gotPrompt, "User: What is salah?") {
		t.Error("prior user turn missing from prompt")
	}
}

func TestAnswer_AlwaysNonEmpty(t *testing.T) {
	questions := []string{"", "   ", "Why do Muslims pray?", "ruling on riba", "show me explicit content"}
	gen := &fakeGenerator{err: ErrUnavailable}
	p := newTestPipeline(&fakeSearcher{}, gen)

	for _, q := range questions {
		if res := p.Answer(context.Background(), q, nil); strings.TrimSpace(res.Text) == "" {
			t.Errorf("empty answer for question %q", q)
		}
	}
}
